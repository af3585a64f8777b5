package infra

import (
	"fmt"

	"pastelpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection with a bounded pool.
// Schema migration is a separate step (RunMigrations) so tools like
// cmd/seedadmin can connect without touching DDL.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations applies the schema. Shared with the e2e tests so they run
// against exactly the same DDL as production.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Usuario{},
		&model.Cliente{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Belt-and-braces CHECK: the conditional decrement already refuses to
	// drive stock negative, but a constraint catches any future caller that
	// bypasses the repository guard. Idempotent.
	patch := `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_stock_no_negativo') THEN
    ALTER TABLE productos ADD CONSTRAINT chk_productos_stock_no_negativo CHECK (stock >= 0);
  END IF;
END $$`
	if err := db.Exec(patch).Error; err != nil {
		return fmt.Errorf("schema patch: %w", err)
	}
	return nil
}
