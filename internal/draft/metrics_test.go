package draft

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetrics_TracksLiveDrafts(t *testing.T) {
	s, fake := newTestStore(t, time.Hour)
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterMetrics(reg, s))

	s.Create(parties("Acme"))
	s.Create(parties("Globex"))

	count, err := testutil.GatherAndCount(reg, "gstinvoice_drafts_open")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	value, err := gaugeValue(reg)
	require.NoError(t, err)
	assert.Equal(t, 2.0, value)

	fake.Advance(2 * time.Hour)

	value, err = gaugeValue(reg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func gaugeValue(reg *prometheus.Registry) (float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return 0, err
	}
	for _, mf := range families {
		if mf.GetName() == "gstinvoice_drafts_open" {
			return mf.GetMetric()[0].GetGauge().GetValue(), nil
		}
	}
	return 0, nil
}
