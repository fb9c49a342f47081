package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/promptforge/internal/kb"
	"github.com/timmy/promptforge/internal/taxonomy"
)

// TaxonomyHandler serves the category taxonomy and the term inventories
// mined from the analyzed corpus.
type TaxonomyHandler struct {
	doc *kb.Document
}

// NewTaxonomyHandler creates a new taxonomy handler.
// Parameters:
//   - doc: loaded knowledge base document.
// Returns:
//   - *TaxonomyHandler: initialized handler.
func NewTaxonomyHandler(doc *kb.Document) *TaxonomyHandler {
	return &TaxonomyHandler{doc: doc}
}

// GetCategories handles GET /api/v1/categories.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	names := taxonomy.Positive.Categories()
	categories := make([]gin.H, 0, len(names))
	for _, name := range names {
		categories = append(categories, gin.H{
			"name":       name,
			"label":      taxonomy.Labels[name],
			"term_count": len(h.doc.TermInventory(name)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetTerms handles GET /api/v1/categories/:category/terms.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TaxonomyHandler) GetTerms(c *gin.Context) {
	category := c.Param("category")
	if !taxonomy.Positive.Contains(category) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Unknown category: " + category,
		})
		return
	}

	terms := h.doc.TermInventory(category)
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"terms":    terms,
		"total":    len(terms),
	})
}
