package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/promptforge/internal/repository"
	"gorm.io/gorm"
)

// RecordsHandler serves categorized prompt records from the database.
type RecordsHandler struct {
	repo *repository.AnnotationRepository
}

// NewRecordsHandler creates a new records handler.
// Parameters:
//   - repo: annotation repository instance.
// Returns:
//   - *RecordsHandler: initialized handler.
func NewRecordsHandler(repo *repository.AnnotationRepository) *RecordsHandler {
	return &RecordsHandler{repo: repo}
}

// ListRecords handles GET /api/v1/records.
// Supports base_model, q, limit and offset query parameters.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RecordsHandler) ListRecords(c *gin.Context) {
	filter := repository.AnnotationFilter{
		BaseModel: c.Query("base_model"),
		Search:    c.Query("q"),
		Limit:     50,
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	records, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list records: " + err.Error(),
		})
		return
	}

	total, err := h.repo.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count records: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// GetRandomRecord handles GET /api/v1/records/random.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RecordsHandler) GetRandomRecord(c *gin.Context) {
	record, err := h.repo.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No records available",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get random record: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetRecord handles GET /api/v1/records/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RecordsHandler) GetRecord(c *gin.Context) {
	id := c.Param("id")

	record, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Record not found: " + id,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get record: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, record)
}
