package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	obstracing "github.com/smallbiznis/gstinvoice/internal/observability/tracing"
)

func (s *Server) RenderSummary(c *gin.Context) {
	s.renderFromBody(c, invoicedomain.ModeSummary)
}

func (s *Server) RenderPDF(c *gin.Context) {
	s.renderFromBody(c, invoicedomain.ModeDocument)
}

func (s *Server) renderFromBody(c *gin.Context, mode invoicedomain.Mode) {
	var req generateInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	s.generate(c, req.toDomain(mode))
}

func (s *Server) generate(c *gin.Context, req invoicedomain.GenerateRequest) {
	c.Set(obstracing.ModeKey, string(req.Mode))

	artifact, err := s.invoiceSvc.Generate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if artifact.Mode == invoicedomain.ModeSummary {
		c.JSON(http.StatusOK, gin.H{"data": artifact.Summary})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Document)
}
