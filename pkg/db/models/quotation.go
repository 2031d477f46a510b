package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quotewise/rfq-backend/pkg/enums"
	"github.com/quotewise/rfq-backend/pkg/types"
)

// Quotation is the persisted terminal aggregate of one RFP processing run.
type Quotation struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuoteNumber  string          `gorm:"column:quote_number;not null;uniqueIndex" json:"quote_number"`
	CustomerName string          `gorm:"column:customer_name;not null" json:"customer_name"`
	RFPHash      string          `gorm:"column:rfp_hash;not null;index" json:"rfp_hash"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null" json:"subtotal"`
	TaxRate      decimal.Decimal `gorm:"column:tax_rate;type:numeric(6,4);not null" json:"tax_rate"`
	TaxAmount    decimal.Decimal `gorm:"column:tax_amount;type:numeric(14,2);not null" json:"tax_amount"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null" json:"total_amount"`

	TotalItems        int              `gorm:"column:total_items;not null" json:"total_items"`
	HighConfidence    int              `gorm:"column:high_confidence;not null" json:"high_confidence"`
	MediumConfidence  int              `gorm:"column:medium_confidence;not null" json:"medium_confidence"`
	LowConfidence     int              `gorm:"column:low_confidence;not null" json:"low_confidence"`
	UnmatchedCount    int              `gorm:"column:unmatched_count;not null" json:"unmatched_count"`
	CategoriesCovered types.StringList `gorm:"column:categories_covered;type:text" json:"categories_covered"`
	BrandsIncluded    types.StringList `gorm:"column:brands_included;type:text" json:"brands_included"`
	MaxLeadTimeDays   int              `gorm:"column:max_lead_time_days;not null" json:"max_lead_time_days"`

	Notes string `gorm:"column:notes;not null;default:''" json:"notes"`

	Items []QuotationLineItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// BeforeCreate assigns an id when the caller did not provide one.
func (q *Quotation) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuotationLineItem snapshots the best product match and its pricing for one
// extracted requirement.
type QuotationLineItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuotationID uuid.UUID `gorm:"column:quotation_id;type:uuid;not null;index" json:"quotation_id"`
	LineNumber  int       `gorm:"column:line_number;not null" json:"line_number"`

	RequirementDescription string               `gorm:"column:requirement_description;not null" json:"requirement_description"`
	RequirementCategory    string               `gorm:"column:requirement_category;not null" json:"requirement_category"`
	Quantity               int                  `gorm:"column:quantity;not null" json:"quantity"`
	Priority               enums.Priority       `gorm:"column:priority;not null" json:"priority"`
	Specifications         types.Specifications `gorm:"column:specifications;type:text" json:"specifications"`

	ProductID    uuid.UUID          `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	ProductSKU   string             `gorm:"column:product_sku;not null" json:"product_sku"`
	ProductName  string             `gorm:"column:product_name;not null" json:"product_name"`
	Brand        string             `gorm:"column:brand;not null;default:''" json:"brand"`
	Category     string             `gorm:"column:category;not null" json:"category"`
	Availability enums.Availability `gorm:"column:availability;not null" json:"availability"`
	LeadTimeDays int                `gorm:"column:lead_time_days;not null;default:0" json:"lead_time_days"`

	MatchScore       float64          `gorm:"column:match_score;not null" json:"match_score"`
	MatchingKeywords types.StringList `gorm:"column:matching_keywords;type:text" json:"matching_keywords"`
	MatchReasons     types.StringList `gorm:"column:match_reasons;type:text" json:"match_reasons"`

	BasePrice  decimal.Decimal `gorm:"column:base_price;type:numeric(14,2);not null" json:"base_price"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(14,2);not null" json:"total_price"`

	MarkupPercent         decimal.Decimal `gorm:"column:markup_percent;type:numeric(8,2);not null" json:"markup_percent"`
	BrandPremiumPercent   decimal.Decimal `gorm:"column:brand_premium_percent;type:numeric(8,2);not null" json:"brand_premium_percent"`
	VolumeDiscountPercent decimal.Decimal `gorm:"column:volume_discount_percent;type:numeric(8,2);not null" json:"volume_discount_percent"`
	PriorityAdjustPercent decimal.Decimal `gorm:"column:priority_adjust_percent;type:numeric(8,2);not null" json:"priority_adjust_percent"`
	MarginPercent         decimal.Decimal `gorm:"column:margin_percent;type:numeric(8,2);not null" json:"margin_percent"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// BeforeCreate assigns an id when the caller did not provide one.
func (li *QuotationLineItem) BeforeCreate(*gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}
