package quotation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/quotewise/rfq-backend/pkg/db"
	"github.com/quotewise/rfq-backend/pkg/db/models"
	pkgerrors "github.com/quotewise/rfq-backend/pkg/errors"
	"github.com/quotewise/rfq-backend/pkg/types"
)

// Repository persists assembled quotations.
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

// Create stores the quotation together with its line items in one
// transaction. A quote number collision reports CodeConflict.
func (r *Repository) Create(ctx context.Context, record *models.Quotation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if db.IsUniqueViolation(err, "quote_number") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "quotation already exists: "+record.QuoteNumber)
	}
	return err
}

// GetByQuoteNumber loads a quotation with its line items ordered by line
// number.
func (r *Repository) GetByQuoteNumber(ctx context.Context, quoteNumber string) (*models.Quotation, error) {
	var record models.Quotation
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("line_number ASC")
		}).
		First(&record, "quote_number = ?", quoteNumber).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns quotation headers newest first, without line items.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Quotation, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.Quotation
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountByRFPHash reports how many stored quotations came from the same
// source text.
func (r *Repository) CountByRFPHash(ctx context.Context, rfpHash string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Where("rfp_hash = ?", rfpHash).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteOlderThan removes quotations created before the cutoff; line items
// follow via the cascade constraint. Returns the number of quotations
// removed.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite builds may not enforce the cascade, so clear items first
		sub := tx.Model(&models.Quotation{}).Select("id").Where("created_at < ?", cutoff)
		if err := tx.Where("quotation_id IN (?)", sub).Delete(&models.QuotationLineItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("created_at < ?", cutoff).Delete(&models.Quotation{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}

// ToModel converts the assembled aggregate into its persistence shape.
func ToModel(q Quotation) *models.Quotation {
	record := &models.Quotation{
		QuoteNumber:       q.QuoteNumber,
		CustomerName:      q.CustomerName,
		RFPHash:           q.RFPHash,
		Subtotal:          q.Subtotal,
		TaxRate:           q.TaxRate,
		TaxAmount:         q.TaxAmount,
		TotalAmount:       q.TotalAmount,
		TotalItems:        q.Statistics.TotalItems,
		HighConfidence:    q.Statistics.HighConfidence,
		MediumConfidence:  q.Statistics.MediumConfidence,
		LowConfidence:     q.Statistics.LowConfidence,
		UnmatchedCount:    q.Statistics.UnmatchedCount,
		CategoriesCovered: types.StringList(q.Statistics.CategoriesCovered),
		BrandsIncluded:    types.StringList(q.Statistics.BrandsIncluded),
		MaxLeadTimeDays:   q.Statistics.MaxLeadTimeDays,
		Notes:             q.Notes,
		CreatedAt:         q.CreatedAt,
	}

	for _, item := range q.Items {
		record.Items = append(record.Items, models.QuotationLineItem{
			LineNumber:             item.LineNumber,
			RequirementDescription: item.Requirement.Description,
			RequirementCategory:    item.Requirement.Category,
			Quantity:               item.Requirement.Quantity,
			Priority:               item.Requirement.Priority,
			Specifications:         item.Requirement.Specifications,
			ProductID:              item.Match.ProductID,
			ProductSKU:             item.Match.SKU,
			ProductName:            item.Match.Name,
			Brand:                  item.Match.Brand,
			Category:               item.Match.Category,
			Availability:           item.Match.Availability,
			LeadTimeDays:           item.Match.LeadTimeDays,
			MatchScore:             item.Match.MatchScore,
			MatchingKeywords:       types.StringList(item.Match.MatchingKeywords),
			MatchReasons:           types.StringList(item.Match.MatchReasons),
			BasePrice:              item.Pricing.BasePrice,
			UnitPrice:              item.Pricing.UnitPrice,
			TotalPrice:             item.Pricing.TotalPrice,
			MarkupPercent:          item.Pricing.MarkupPercent,
			BrandPremiumPercent:    item.Pricing.BrandPremiumPercent,
			VolumeDiscountPercent:  item.Pricing.VolumeDiscountPercent,
			PriorityAdjustPercent:  item.Pricing.PriorityAdjustPercent,
			MarginPercent:          item.Pricing.MarginPercent,
		})
	}
	return record
}
