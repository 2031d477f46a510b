package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/quotewise/rfq-backend/internal/catalog"
	"github.com/quotewise/rfq-backend/pkg/config"
	"github.com/quotewise/rfq-backend/pkg/db"
	"github.com/quotewise/rfq-backend/pkg/db/models"
	"github.com/quotewise/rfq-backend/pkg/enums"
	"github.com/quotewise/rfq-backend/pkg/logger"
	"github.com/quotewise/rfq-backend/pkg/migrate"
)

// sampleCatalog is the deterministic demo inventory. Seeding is idempotent:
// rows upsert by SKU, so reruns refresh rather than duplicate.
var sampleCatalog = []models.Product{
	{SKU: "CDL-18V-001", Name: "Cordless Drill 18V", Description: "18V brushless cordless drill with two batteries", Category: "Tools", Brand: "Makita", Availability: enums.AvailabilityInStock, LeadTimeDays: 3},
	{SKU: "HMR-STL-002", Name: "Steel Claw Hammer", Description: "16oz forged steel claw hammer with fiberglass handle", Category: "Tools", Brand: "Stanley", Availability: enums.AvailabilityInStock, LeadTimeDays: 2},
	{SKU: "SAW-CIR-003", Name: "Circular Saw 1400W", Description: "1400W circular saw with 190mm blade", Category: "Tools", Brand: "Bosch", Availability: enums.AvailabilityLowStock, LeadTimeDays: 7},
	{SKU: "LED-FLD-010", Name: "LED Floodlight 50W", Description: "IP65 outdoor LED floodlight, 50W, 6500K", Category: "Lighting", Brand: "Philips", Availability: enums.AvailabilityInStock, LeadTimeDays: 4},
	{SKU: "LED-PNL-011", Name: "LED Panel Light 600x600", Description: "40W recessed LED panel for suspended ceilings", Category: "Lighting", Brand: "Philips", Availability: enums.AvailabilityInStock, LeadTimeDays: 5},
	{SKU: "BLB-E27-012", Name: "LED Bulb E27 9W", Description: "9W E27 LED bulb, warm white, pack compatible", Category: "Lighting", Brand: "Osram", Availability: enums.AvailabilityInStock, LeadTimeDays: 2},
	{SKU: "HLM-SFT-020", Name: "Safety Helmet", Description: "Industrial safety helmet with adjustable harness", Category: "Safety", Brand: "3M", Availability: enums.AvailabilityInStock, LeadTimeDays: 3},
	{SKU: "GLV-NTR-021", Name: "Nitrile Work Gloves", Description: "Cut-resistant nitrile coated work gloves, size L", Category: "Safety", Brand: "3M", Availability: enums.AvailabilityInStock, LeadTimeDays: 2},
	{SKU: "VST-HIV-022", Name: "Hi-Vis Safety Vest", Description: "Class 2 high visibility vest with reflective strips", Category: "Safety", Brand: "Generic", Availability: enums.AvailabilityOutOfStock, LeadTimeDays: 21},
	{SKU: "CBL-CAT6-030", Name: "Cat6 Ethernet Cable 305m", Description: "Cat6 UTP cable, 305m box, solid copper", Category: "Electronics", Brand: "Siemens", Availability: enums.AvailabilityInStock, LeadTimeDays: 6},
	{SKU: "CBL-PWR-031", Name: "Power Cable 3x2.5mm", Description: "Flexible power cable 3x2.5mm, 100m reel", Category: "Electronics", Brand: "Generic", Availability: enums.AvailabilityInStock, LeadTimeDays: 5},
	{SKU: "CLN-IND-040", Name: "Industrial Floor Cleaner", Description: "Concentrated industrial floor cleaner, 5L", Category: "Cleaning", Brand: "Generic", Availability: enums.AvailabilityInStock, LeadTimeDays: 2},
	{SKU: "FST-SCR-050", Name: "Self-Tapping Screws M4", Description: "M4 self-tapping screws, box of 1000", Category: "Fasteners", Brand: "Hilti", Availability: enums.AvailabilityInStock, LeadTimeDays: 3},
	{SKU: "FST-ANC-051", Name: "Wedge Anchors M10", Description: "M10 wedge anchors for concrete, box of 50", Category: "Fasteners", Brand: "Hilti", Availability: enums.AvailabilityLowStock, LeadTimeDays: 10},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	repo := catalog.NewRepository(dbClient.DB())
	for i := range sampleCatalog {
		product := sampleCatalog[i]
		if err := repo.UpsertBySKU(ctx, &product); err != nil {
			logg.Error(logg.WithField(ctx, "sku", product.SKU), "failed to seed product", err)
			os.Exit(1)
		}
	}

	total, err := repo.Count(ctx)
	if err != nil {
		logg.Error(ctx, "failed to count catalog", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"seeded": len(sampleCatalog),
		"total":  total,
	})
	logg.Info(ctx, "catalog seed complete")
}
