package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/kb"
	"github.com/timmy/promptforge/internal/service"
)

func testDocument() *kb.Document {
	return &kb.Document{
		Metadata: kb.Metadata{TotalRecords: 2, WithPrompts: 2},
		CategorizedImages: []domain.RecordAnnotation{
			{
				ID:        "a",
				BaseModel: "Pony",
				Categories: domain.CategoryMatchSet{
					"subject":     {"1girl"},
					"environment": {"beach", "sunset"},
				},
			},
			{
				ID:        "b",
				BaseModel: "Illustrious",
				Categories: domain.CategoryMatchSet{
					"subject": {"1boy"},
				},
			},
		},
		LoRAAnalysis: domain.LoRAStats{
			Counts: map[string]int{"DetailTweaker": 3},
		},
		TechnicalSettings: domain.TechnicalStats{
			Samplers: map[string]int{"Euler a": 2},
		},
	}
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	doc := testDocument()
	taxonomyHandler := NewTaxonomyHandler(doc)
	statsHandler := NewStatsHandler(doc)
	generator := service.NewGeneratorService(doc, service.NewExpansionService(nil), 5, 10)
	generateHandler := NewGenerateHandler(generator)

	r.GET("/health", NewHealthHandler().Health)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/categories", taxonomyHandler.GetCategories)
		v1.GET("/categories/:category/terms", taxonomyHandler.GetTerms)
		v1.GET("/stats", statsHandler.GetStats)
		v1.GET("/loras", statsHandler.GetLoRAs)
		v1.POST("/generate", generateHandler.Generate)
		v1.POST("/expand", generateHandler.Expand)
	}
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, decoded
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter()
	w, body := doRequest(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestGetCategoriesListsFullTaxonomy(t *testing.T) {
	r := testRouter()
	w, body := doRequest(t, r, http.MethodGet, "/api/v1/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["total"].(float64) != 15 {
		t.Errorf("expected 15 categories, got %v", body["total"])
	}
}

func TestGetTerms(t *testing.T) {
	r := testRouter()

	w, body := doRequest(t, r, http.MethodGet, "/api/v1/categories/environment/terms", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	terms, ok := body["terms"].([]interface{})
	if !ok || len(terms) != 2 {
		t.Fatalf("expected 2 environment terms, got %v", body["terms"])
	}
	if terms[0] != "beach" || terms[1] != "sunset" {
		t.Errorf("expected sorted terms [beach sunset], got %v", terms)
	}
}

func TestGetTermsUnknownCategory(t *testing.T) {
	r := testRouter()
	w, _ := doRequest(t, r, http.MethodGet, "/api/v1/categories/nonsense/terms", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	r := testRouter()
	w, body := doRequest(t, r, http.MethodGet, "/api/v1/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	baseModels, ok := body["base_models"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing base_models in %v", body)
	}
	if baseModels["Pony"].(float64) != 1 {
		t.Errorf("unexpected base model counts: %v", baseModels)
	}
}

func TestGetLoRAs(t *testing.T) {
	r := testRouter()
	w, body := doRequest(t, r, http.MethodGet, "/api/v1/loras", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	counts, ok := body["counts"].(map[string]interface{})
	if !ok || counts["DetailTweaker"].(float64) != 3 {
		t.Errorf("unexpected lora counts: %v", body)
	}
}

func TestGenerateReturnsVariations(t *testing.T) {
	r := testRouter()
	req := `{"selections":{"subject":["1girl"],"environment":["beach"]},"count":3,"seed":7}`
	w, body := doRequest(t, r, http.MethodPost, "/api/v1/generate", req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", w.Code, body)
	}
	variations, ok := body["variations"].([]interface{})
	if !ok || len(variations) != 3 {
		t.Fatalf("expected 3 variations, got %v", body["variations"])
	}
	first := variations[0].(map[string]interface{})
	if !strings.Contains(first["positive"].(string), "1girl") {
		t.Errorf("variation lost the selected subject: %v", first["positive"])
	}
	if first["negative"].(string) == "" {
		t.Error("variation missing negative prompt")
	}
}

func TestGenerateRejectsUnknownCategory(t *testing.T) {
	r := testRouter()
	req := `{"selections":{"bogus":["x"]}}`
	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/generate", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	r := testRouter()
	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/generate", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestExpandFallsBackWithoutModel(t *testing.T) {
	r := testRouter()
	req := `{"selections":{"subject":["1girl"]},"count":2}`
	w, body := doRequest(t, r, http.MethodPost, "/api/v1/expand", req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	variations, ok := body["variations"].([]interface{})
	if !ok || len(variations) != 2 {
		t.Fatalf("expected 2 locally synthesized variations, got %v", body["variations"])
	}
}
