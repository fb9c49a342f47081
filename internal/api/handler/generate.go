package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/service"
	"github.com/timmy/promptforge/internal/taxonomy"
)

// GenerateHandler serves prompt synthesis and expansion endpoints.
type GenerateHandler struct {
	generator *service.GeneratorService
}

// NewGenerateHandler creates a new generate handler.
// Parameters:
//   - generator: generator service instance.
// Returns:
//   - *GenerateHandler: initialized handler.
func NewGenerateHandler(generator *service.GeneratorService) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// generateRequest is the body for POST /generate and POST /expand.
type generateRequest struct {
	Selections     map[string][]string `json:"selections"`
	CustomTerms    string              `json:"custom_terms"`
	Count          int                 `json:"count"`
	Seed           *int64              `json:"seed"`
	IncludeQuality *bool               `json:"include_quality"`
	QualityTags    []string            `json:"quality_tags"`
	UseVariants    *bool               `json:"use_variants"`
}

// options converts the request into generator options. Quality tags and
// variant substitution default to on.
func (r *generateRequest) options(expand bool) service.GenerateOptions {
	opts := service.GenerateOptions{
		Count:          r.Count,
		IncludeQuality: true,
		QualityTags:    r.QualityTags,
		UseVariants:    true,
		Expand:         expand,
	}
	if r.IncludeQuality != nil {
		opts.IncludeQuality = *r.IncludeQuality
	}
	if r.UseVariants != nil {
		opts.UseVariants = *r.UseVariants
	}
	if r.Seed != nil {
		opts.Seed = *r.Seed
		opts.HasSeed = true
	}
	return opts
}

// validate rejects selections naming categories outside the taxonomy.
func (r *generateRequest) validate() string {
	for category := range r.Selections {
		if !taxonomy.Positive.Contains(category) {
			return "Unknown category: " + category
		}
	}
	return ""
}

// Generate handles POST /api/v1/generate using local synthesis only.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *GenerateHandler) Generate(c *gin.Context) {
	h.handle(c, false)
}

// Expand handles POST /api/v1/expand. Drafts are refined by the external
// model when it is configured; on any failure the local drafts are served.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *GenerateHandler) Expand(c *gin.Context) {
	h.handle(c, true)
}

func (h *GenerateHandler) handle(c *gin.Context, expand bool) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": msg,
		})
		return
	}

	sel := domain.Selection{
		Categories:  req.Selections,
		CustomTerms: req.CustomTerms,
	}

	variations := h.generator.Generate(c.Request.Context(), sel, req.options(expand))

	c.JSON(http.StatusOK, gin.H{
		"variations": variations,
	})
}
