// cmd/psictl/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/andresuchdata/psi-planner/internal/config"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository/postgres"
	"github.com/andresuchdata/psi-planner/internal/service"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func openDB() (*postgres.DB, error) {
	cfg := config.Load()
	return postgres.NewDB(&cfg.Database)
}

func newGenerator(db *postgres.DB) *service.POGeneratorService {
	return service.NewPOGeneratorService(
		postgres.NewProductRepository(db),
		postgres.NewInventoryRepository(db),
		postgres.NewSalesRepository(db),
		postgres.NewPORepository(db),
		service.NewSettingsService(postgres.NewSystemConfigRepository(db)),
	)
}

func initDBCommand(c *cli.Context) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(c.Context); err != nil {
		return err
	}

	fmt.Println("schema is up to date")
	return nil
}

// seedConfigCommand writes the compiled planning defaults into the
// system_config table so operators can inspect and tune them in place.
func seedConfigCommand(c *cli.Context) error {
	dbURL := c.String("db-url")
	if dbURL == "" {
		return fmt.Errorf("db-url is required (flag or DATABASE_URL)")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	defaults := planning.DefaultConfig()
	rows := []struct {
		key, value, description string
	}{
		{"forecast_weights", "0.5,0.3,0.15,0.05", "Weighted moving average weights, most recent week first"},
		{"order_advance_days", fmt.Sprintf("%d", defaults.OrderAdvanceDays), "Days between PO creation and production start"},
		{"production_days", fmt.Sprintf("%d", defaults.ProductionDays), "CKD production duration"},
		{"shipping_days", fmt.Sprintf("%d", defaults.ShippingDays), "Sea freight duration"},
		{"customs_days", fmt.Sprintf("%d", defaults.CustomsDays), "Customs clearance duration"},
		{"lead_time_days", fmt.Sprintf("%d", defaults.LeadTimeDays), "Total order-to-stock lead time"},
		{"order_to_etd_days", fmt.Sprintf("%d", defaults.OrderToETDDays), "Days from order week to estimated departure"},
		{"order_to_eta_days", fmt.Sprintf("%d", defaults.OrderToETADays), "Days from order week to estimated arrival"},
		{"target_dos_new_min", fmt.Sprintf("%d", defaults.TargetDOSNewMin), "Lower healthy DOS bound for new branches"},
		{"target_dos_new_max", fmt.Sprintf("%d", defaults.TargetDOSNewMax), "Upper healthy DOS bound for new branches"},
		{"target_dos_established_max", fmt.Sprintf("%d", defaults.TargetDOSEstablishedMax), "Healthy DOS ceiling for established branches"},
		{"service_level", fmt.Sprintf("%.2f", defaults.ServiceLevel), "Service level for the safety stock z-score"},
	}

	query := `
		INSERT INTO system_config (config_key, config_value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (config_key) DO NOTHING
	`
	seeded := 0
	for _, row := range rows {
		res, err := db.ExecContext(c.Context, query, row.key, row.value, row.description)
		if err != nil {
			return fmt.Errorf("failed to seed config key %s: %w", row.key, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			seeded += int(n)
		}
	}

	fmt.Printf("seeded %d config keys (%d already present)\n", seeded, len(rows)-seeded)
	return nil
}

func generateWeeklyCommand(c *cli.Context) error {
	week := time.Now()
	if raw := c.String("week"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("week must be formatted YYYY-MM-DD: %w", err)
		}
		week = parsed
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(c.Context, 5*time.Minute)
	defer cancel()

	result, err := newGenerator(db).GenerateWeekly(ctx, week)
	if err != nil {
		return err
	}

	fmt.Printf("order week %s: generated %d, skipped %d\n",
		result.OrderWeek, result.GeneratedCount, result.SkippedCount)
	return nil
}

func generateAnnualCommand(c *cli.Context) error {
	year := c.Int("year")
	if year == 0 {
		year = time.Now().Year()
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(c.Context, 30*time.Minute)
	defer cancel()

	result, err := newGenerator(db).GenerateAnnual(ctx, year)
	if err != nil {
		return err
	}

	generated := 0
	for _, weekly := range result.Results {
		generated += weekly.GeneratedCount
	}
	fmt.Printf("year %d: %d weeks processed, %d purchase orders generated\n",
		result.Year, len(result.Results), generated)
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "psictl",
		Usage: "Operational tooling for the PSI planner",
		Commands: []*cli.Command{
			{
				Name:   "init-db",
				Usage:  "Create or update the database schema",
				Action: initDBCommand,
			},
			{
				Name:   "seed-config",
				Usage:  "Seed the planning defaults into system_config",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: seedConfigCommand,
			},
			{
				Name:  "generate-weekly",
				Usage: "Run one weekly PO generation pass",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "week",
						Usage: "Any date inside the target week (YYYY-MM-DD), defaults to today",
					},
				},
				Action: generateWeeklyCommand,
			},
			{
				Name:  "generate-annual",
				Usage: "Run 52 weekly PO generation passes for a year",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "year",
						Usage: "Target year, defaults to the current year",
					},
				},
				Action: generateAnnualCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
