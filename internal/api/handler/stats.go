package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/promptforge/internal/kb"
)

// StatsHandler serves corpus-wide aggregates from the knowledge base.
type StatsHandler struct {
	doc *kb.Document
}

// NewStatsHandler creates a new stats handler.
// Parameters:
//   - doc: loaded knowledge base document.
// Returns:
//   - *StatsHandler: initialized handler.
func NewStatsHandler(doc *kb.Document) *StatsHandler {
	return &StatsHandler{doc: doc}
}

// GetStats handles GET /api/v1/stats.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *StatsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"metadata":           h.doc.Metadata,
		"base_models":        h.doc.BaseModelCounts(),
		"technical_settings": h.doc.TechnicalSettings,
		"variations":         h.doc.Variations,
	})
}

// GetLoRAs handles GET /api/v1/loras.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *StatsHandler) GetLoRAs(c *gin.Context) {
	c.JSON(http.StatusOK, h.doc.LoRAAnalysis)
}
