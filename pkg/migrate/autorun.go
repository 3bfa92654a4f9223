package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/rentledger-backend/pkg/config"
	"github.com/angelmondragon/rentledger-backend/pkg/db"
	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaybeRunDev brings the schema up automatically when the app runs in dev mode
// with the feature flag enabled. SQLite deployments always use gorm
// AutoMigrate since goose migrations target Postgres.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.DB.Driver == "sqlite" {
		logg.Info(ctx, "running gorm auto-migration (sqlite)")
		return AutoMigrate(client.DB())
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrate creates the full ledger schema through gorm and seeds the
// property id counter at zero.
func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.Property{},
		&models.StatisticRecord{},
		&models.WhitelistEntry{},
		&models.Transfer{},
		&models.Account{},
		&models.LedgerCounter{},
	); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}
	seed := models.LedgerCounter{Name: models.CounterPropertyIDs, Value: 0}
	return conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error
}
