package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quotewise/rfq-backend/pkg/db/models"
	"github.com/quotewise/rfq-backend/pkg/enums"
)

func TestSearchAnyMatchesAcrossFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	byName := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Cordless Drill 18V"
		p.Category = "Tools"
	})
	byDescription := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Site Kit A"
		p.Description = "Includes a compact drill bit set"
		p.Category = "Tools"
	})
	bySKU := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Mystery Box"
		p.SKU = "DRILL-9000"
		p.Category = "General"
	})
	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Floor Cleaner"
		p.Description = "Concentrated cleaning fluid"
		p.Category = "Cleaning"
	})

	results, err := repo.SearchAny(ctx, []string{"drill"}, "", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	found := map[string]bool{}
	for _, p := range results {
		found[p.ID.String()] = true
	}
	require.True(t, found[byName.ID.String()])
	require.True(t, found[byDescription.ID.String()])
	require.True(t, found[bySKU.ID.String()])
}

func TestSearchAnyCategoryFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tools := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Cordless Drill 18V"
		p.Category = "Tools"
	})
	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Drill Themed Mug"
		p.Category = "General"
	})

	results, err := repo.SearchAny(ctx, []string{"drill"}, "Tools", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, tools.ID, results[0].ID)
}

func TestSearchAnyPrefersNamePrefixThenShorterName(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Industrial Hammer Drill Station Deluxe"
		p.Category = "Tools"
	})
	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Drill Master 3000 Workshop Edition"
		p.Category = "Tools"
	})
	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Mini Drill"
		p.Category = "Tools"
	})

	results, err := repo.SearchAny(ctx, []string{"drill"}, "", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.Equal(t, "Drill Master 3000 Workshop Edition", results[0].Name)
	require.Equal(t, "Mini Drill", results[1].Name)
	require.Equal(t, "Industrial Hammer Drill Station Deluxe", results[2].Name)
}

func TestSearchAnyCapsAtTwiceLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		mustCreateTestProduct(t, db, func(p *models.Product) {
			p.Name = "Drill Variant"
			p.Category = "Tools"
		})
	}

	results, err := repo.SearchAny(ctx, []string{"drill"}, "", 3)
	require.NoError(t, err)
	require.Len(t, results, 6)
}

func TestSearchAnyEmptyKeywords(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	results, err := repo.SearchAny(context.Background(), nil, "", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestFindByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Cordless Drill 18V"
		p.SKU = "CDL-18V-001"
	})

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, stored.ID)
	require.Equal(t, "CDL-18V-001", stored.SKU)

	_, err = repo.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByCategoryNameAscending(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Steel Claw Hammer"
		p.Category = "Tools"
	})
	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Cordless Drill 18V"
		p.Category = "Tools"
	})
	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Name = "Safety Helmet"
		p.Category = "Safety"
	})

	tools, err := repo.ListByCategory(ctx, "tools")
	require.NoError(t, err)
	require.Len(t, tools, 2)
	require.Equal(t, "Cordless Drill 18V", tools[0].Name)
	require.Equal(t, "Steel Claw Hammer", tools[1].Name)

	empty, err := repo.ListByCategory(ctx, "Plumbing")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestUpsertBySKURefreshesExistingRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	original := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.SKU = "LED-PANEL-40W"
		p.Name = "LED Panel 40W"
		p.LeadTimeDays = 5
	})

	update := &models.Product{
		SKU:          "LED-PANEL-40W",
		Name:         "LED Panel 40W v2",
		Description:  "Updated revision",
		Category:     "Lighting",
		Brand:        "Lumina",
		Availability: enums.AvailabilityLowStock,
		Currency:     "USD",
		LeadTimeDays: 9,
	}
	require.NoError(t, repo.UpsertBySKU(ctx, update))

	stored, err := repo.FindBySKU(ctx, "LED-PANEL-40W")
	require.NoError(t, err)
	require.Equal(t, original.ID, stored.ID)
	require.Equal(t, "LED Panel 40W v2", stored.Name)
	require.Equal(t, 9, stored.LeadTimeDays)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
