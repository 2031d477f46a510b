package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quotewise/rfq-backend/pkg/db/models"
)

// Repository is the read-mostly query surface over the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads the product by its unique SKU.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchAny returns products whose name, description, SKU, category or brand
// contains any of the keywords (case-insensitive substring), optionally
// AND-filtered by category. It fetches up to 2x limit candidates ordered by
// name-prefix match first, then shorter names first; the matcher re-scores
// and re-sorts, so this ordering is advisory.
func (r *Repository) SearchAny(ctx context.Context, keywords []string, categoryFilter string, limit int) ([]models.Product, error) {
	if len(keywords) == 0 || limit <= 0 {
		return nil, nil
	}

	var (
		likeConds   []string
		likeArgs    []any
		prefixConds []string
		prefixArgs  []any
	)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		contains := "%" + kw + "%"
		likeConds = append(likeConds,
			"(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(category) LIKE ? OR LOWER(brand) LIKE ?)")
		likeArgs = append(likeArgs, contains, contains, contains, contains, contains)

		prefixConds = append(prefixConds, "LOWER(name) LIKE ?")
		prefixArgs = append(prefixArgs, kw+"%")
	}
	if len(likeConds) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where(strings.Join(likeConds, " OR "), likeArgs...)

	if categoryFilter != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(categoryFilter))
	}

	orderSQL := fmt.Sprintf("CASE WHEN %s THEN 0 ELSE 1 END, LENGTH(name)", strings.Join(prefixConds, " OR "))
	query = query.Clauses(clause.OrderBy{
		Expression: clause.Expr{SQL: orderSQL, Vars: prefixArgs, WithoutParentheses: true},
	})

	var products []models.Product
	if err := query.Limit(2 * limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory returns all products in one category, name ascending.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(category)).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// UpsertBySKU inserts the product or refreshes the existing row carrying the
// same SKU. Used by seeding; the pipeline never writes the catalog.
func (r *Repository) UpsertBySKU(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "category", "brand", "availability", "currency", "lead_time_days", "updated_at",
			}),
		}).
		Create(product).Error
}

// Count returns the catalog size.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
