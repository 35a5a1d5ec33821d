package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
)

func (s *Server) CreateDraft(c *gin.Context) {
	var parties invoicedomain.Parties
	if err := c.ShouldBindJSON(&parties); err != nil && !errors.Is(err, io.EOF) {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": s.drafts.Create(parties)})
}

func (s *Server) GetDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	d, err := s.drafts.Get(id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) UpdateDraftParties(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var parties invoicedomain.Parties
	if err := c.ShouldBindJSON(&parties); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	d, err := s.drafts.UpdateParties(id, parties)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) DeleteDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	if err := s.drafts.Delete(id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) AddDraftItem(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req lineItemRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	key, err := s.drafts.AddItem(id, req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": addItemResponse{Key: key}})
}

func (s *Server) RemoveDraftItem(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	key, err := strconv.ParseInt(strings.TrimSpace(c.Param("key")), 10, 64)
	if err != nil {
		AbortWithError(c, newValidationError("key", "invalid_key", "invalid item key"))
		return
	}

	if err := s.drafts.RemoveItem(id, key); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) RenderDraftSummary(c *gin.Context) {
	s.renderDraft(c, invoicedomain.ModeSummary)
}

func (s *Server) RenderDraftPDF(c *gin.Context) {
	s.renderDraft(c, invoicedomain.ModeDocument)
}

func (s *Server) renderDraft(c *gin.Context, mode invoicedomain.Mode) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	req, err := s.drafts.Snapshot(id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	req.Mode = mode

	s.generate(c, req)
}

func draftID(c *gin.Context) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return 0, false
	}
	return id, true
}
