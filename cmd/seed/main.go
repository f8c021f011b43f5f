// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"invetra/internal/core/id"
	"invetra/internal/infrastructure/storage/postgres"
	"invetra/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedWarehouses(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed warehouses", "error", err)
	}

	if err := seedProducts(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedWarehouses(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	warehouses := []struct {
		name          string
		address       string
		wType         string
		allowNegative bool
		isDefault     bool
	}{
		{"Main Warehouse", "12 Dock Rd, Unit 3", "main", false, true},
		{"Retail Store", "5 Market St", "retail", false, false},
		{"Transit", "", "transit", true, false},
	}

	for i, w := range warehouses {
		whID := id.New()
		code := fmt.Sprintf("WH-%03d", i+1)
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_warehouses (id, code, name, address, type, allow_negative_stock, is_default, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 1, false, '{}')
			ON CONFLICT (code) DO NOTHING
		`, whID, code, w.name, w.address, w.wType, w.allowNegative, w.isDefault)
		if err != nil {
			log.Warnw("failed to seed warehouse", "name", w.name, "error", err)
		}
	}

	log.Info("warehouses seeded")
	return nil
}

// alternateUnit mirrors the JSONB shape stored in cat_products.units.
type alternateUnit struct {
	Name   string          `json:"name"`
	Factor decimal.Decimal `json:"factor"`
}

func seedProducts(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	products := []struct {
		name         string
		sku          string
		barcode      string
		pType        string
		baseUnit     string
		units        []alternateUnit
		standardCost string
	}{
		{
			"Office Paper A4", "PAP-A4", "4600000000001", "goods", "pack",
			[]alternateUnit{{Name: "box", Factor: decimal.NewFromInt(10)}},
			"3.5000",
		},
		{
			"Ballpoint Pen Blue", "PEN-BLU", "4600000000002", "goods", "pcs",
			[]alternateUnit{{Name: "dozen", Factor: decimal.NewFromInt(12)}},
			"0.4500",
		},
		{
			"Desktop Stapler", "STP-001", "4600000000003", "goods", "pcs",
			nil,
			"6.0000",
		},
		{
			"Paper Clips 28mm", "CLP-028", "4600000000004", "goods", "box",
			[]alternateUnit{{Name: "carton", Factor: decimal.NewFromInt(20)}},
			"1.2000",
		},
		{
			"Lever Arch Folder", "FOL-REG", "4600000000005", "goods", "pcs",
			nil,
			"2.8000",
		},
		{
			"Delivery", "DELIVERY", "", "service", "pcs",
			nil,
			"0",
		},
	}

	for i, p := range products {
		prodID := id.New()
		code := fmt.Sprintf("PRD-%05d", i+1)

		unitsJSON := []byte("[]")
		if len(p.units) > 0 {
			var err error
			unitsJSON, err = json.Marshal(p.units)
			if err != nil {
				return fmt.Errorf("marshal units for %s: %w", p.name, err)
			}
		}

		var barcode any
		if p.barcode != "" {
			barcode = p.barcode
		}

		cost, err := decimal.NewFromString(p.standardCost)
		if err != nil {
			return fmt.Errorf("parse standard cost for %s: %w", p.name, err)
		}

		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, type, sku, barcode, base_unit, units, standard_cost, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, false, '{}')
			ON CONFLICT (code) DO NOTHING
		`, prodID, code, p.name, p.pType, p.sku, barcode, p.baseUnit, unitsJSON, cost)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	log.Info("products seeded")
	return nil
}
