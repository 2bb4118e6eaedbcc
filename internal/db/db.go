package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-desk/internal/config"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	gormCfg := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.DemoMode {
		log.Printf("[db] demo mode, sqlite file %s", cfg.DemoDBPath)
		db, err = gorm.Open(sqlite.Open(cfg.DemoDBPath), gormCfg)
	} else {
		db, err = gorm.Open(postgres.Open(cfg.DBUrl), gormCfg)
	}
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	if cfg.DemoMode {
		// sqlite aceita um escritor por vez
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE businesses
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.CatalogService{},
		&models.Client{},
		&models.Appointment{},
		&models.ServiceOrder{},
		&models.ServiceOrderItem{},
		&models.AuditLog{},
		&models.KVEntry{},
	)
}
