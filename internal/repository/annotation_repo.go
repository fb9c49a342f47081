package repository

import (
	"context"
	"fmt"

	"github.com/timmy/promptforge/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnnotationFilter narrows List queries. Zero values mean "no filter".
type AnnotationFilter struct {
	BaseModel string
	Search    string
	Limit     int
	Offset    int
}

// AnnotationRepository handles categorized prompt record operations.
type AnnotationRepository struct {
	db *gorm.DB
}

// NewAnnotationRepository creates a new AnnotationRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *AnnotationRepository: repository instance bound to db.
func NewAnnotationRepository(db *gorm.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

// Upsert creates or updates an annotation keyed by record ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ann: annotation to create or update.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *AnnotationRepository) Upsert(ctx context.Context, ann *domain.RecordAnnotation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(ann).Error
}

// UpsertBatch creates or updates annotations in batches.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - anns: annotations to persist.
//   - batchSize: number of rows per insert statement.
// Returns:
//   - error: non-nil if any batch fails.
func (r *AnnotationRepository) UpsertBatch(ctx context.Context, anns []domain.RecordAnnotation, batchSize int) error {
	if len(anns) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(anns, batchSize).Error
}

// GetByID retrieves an annotation by its record ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record ID.
// Returns:
//   - *domain.RecordAnnotation: annotation if found.
//   - error: non-nil if lookup fails.
func (r *AnnotationRepository) GetByID(ctx context.Context, id string) (*domain.RecordAnnotation, error) {
	var ann domain.RecordAnnotation
	if err := r.db.WithContext(ctx).First(&ann, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ann, nil
}

// List retrieves annotations matching the filter with pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: base model, prompt search and pagination settings.
// Returns:
//   - []domain.RecordAnnotation: matching annotations.
//   - error: non-nil if the query fails.
func (r *AnnotationRepository) List(ctx context.Context, filter AnnotationFilter) ([]domain.RecordAnnotation, error) {
	var anns []domain.RecordAnnotation
	query := r.db.WithContext(ctx)
	if filter.BaseModel != "" {
		query = query.Where("base_model = ?", filter.BaseModel)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("prompt LIKE ? OR negative LIKE ?", like, like)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if err := query.
		Limit(limit).
		Offset(filter.Offset).
		Order("id ASC").
		Find(&anns).Error; err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	return anns, nil
}

// Random retrieves one annotation chosen uniformly at random.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.RecordAnnotation: a random annotation.
//   - error: non-nil if the query fails or the table is empty.
func (r *AnnotationRepository) Random(ctx context.Context) (*domain.RecordAnnotation, error) {
	var ann domain.RecordAnnotation
	if err := r.db.WithContext(ctx).Order("RANDOM()").First(&ann).Error; err != nil {
		return nil, err
	}
	return &ann, nil
}

// Count returns the total number of stored annotations.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: number of annotations.
//   - error: non-nil if the query fails.
func (r *AnnotationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.RecordAnnotation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BaseModels returns all distinct base model names.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: distinct base model names.
//   - error: non-nil if the query fails.
func (r *AnnotationRepository) BaseModels(ctx context.Context) ([]string, error) {
	var models []string
	if err := r.db.WithContext(ctx).
		Model(&domain.RecordAnnotation{}).
		Where("base_model <> ''").
		Distinct("base_model").
		Pluck("base_model", &models).Error; err != nil {
		return nil, err
	}
	return models, nil
}
