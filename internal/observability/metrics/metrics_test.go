package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordRender("document", OutcomeSuccess, 20*time.Millisecond, 3)
	m.RecordRender("document", OutcomeSuccess, 10*time.Millisecond, 1)
	m.RecordRender("summary", OutcomeEmpty, time.Millisecond, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.renders.WithLabelValues("document", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("summary", OutcomeEmpty)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.renderDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "gstinvoice_document_pages" {
			assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
			assert.Equal(t, 4.0, mf.GetMetric()[0].GetHistogram().GetSampleSum())
		}
	}
}

func TestRecordRender_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.RecordRender("document", OutcomeError, time.Second, 0) })
}

func TestNew_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestHTTPMetrics_GinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/v1/drafts/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/drafts/"+string(rune('a'+i)), nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/v1/drafts/:id", "404")))
}

func TestNewRegistry_HasRuntimeCollectors(t *testing.T) {
	families, err := NewRegistry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}
