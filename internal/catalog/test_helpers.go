package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotewise/rfq-backend/pkg/db/models"
	"github.com/quotewise/rfq-backend/pkg/enums"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:           uuid.New(),
		SKU:          fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:         "Test Product",
		Description:  "General purpose test product",
		Category:     "General",
		Brand:        "Acme",
		Availability: enums.AvailabilityInStock,
		Currency:     "USD",
		LeadTimeDays: 3,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
