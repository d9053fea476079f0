package pg

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"logidash/config"
	dbt "logidash/db/db"
	"logidash/entity"
)

// CreateDSN builds the connection string from DATABASE_URL or the DATABASE_* parts.
func CreateDSN() string {
	connStr := "host=localhost user=postgres dbname=postgres port=5432 sslmode=disable TimeZone=UTC"
	if url := config.FromEnv().DatabaseURL; url != "" {
		log.Printf("Using DATABASE_URL: *")
		connStr = url
	} else if os.Getenv("DATABASE_PASSWORD") != "" {
		dbUser := "postgres"
		if os.Getenv("DATABASE_USER") != "" {
			dbUser = os.Getenv("DATABASE_USER")
		}
		host := "127.0.0.1"
		if os.Getenv("DATABASE_HOST") != "" {
			host = os.Getenv("DATABASE_HOST")
		}
		connStr = fmt.Sprintf("host=%s user=%s dbname=postgres password=%s port=5432 sslmode=disable", host, dbUser, os.Getenv("DATABASE_PASSWORD"))
		log.Printf("Using DATABASE_PASSWORD: *")
	} else {
		log.Printf("Using default connection string: %s", connStr)
	}
	return connStr
}

func CloseGORM(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB from GORM: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// InitPostgresGORM initializes a new GORM DB connection to PostgreSQL.
func InitPostgresGORM(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewSeededStores builds one postgres-backed store per entity type and seeds the
// empty ones from the fixtures.
func NewSeededStores(ctx context.Context, db *gorm.DB) (*dbt.Stores, error) {
	inquiries := NewGORMStore[entity.Inquiry](db, "inquiries")
	drivers := NewGORMStore[entity.Driver](db, "drivers")
	trips := NewGORMStore[entity.Trip](db, "trips")
	payables := NewGORMStore[entity.DriverPayable](db, "payables")
	sla := NewGORMStore[entity.SLARecord](db, "sla")
	users := NewGORMStore[entity.User](db, "users")

	seeds := []func() error{
		func() error { return inquiries.Seed(ctx, entity.SeedInquiries()) },
		func() error { return drivers.Seed(ctx, entity.SeedDrivers()) },
		func() error { return trips.Seed(ctx, entity.SeedTrips()) },
		func() error { return payables.Seed(ctx, entity.SeedPayables()) },
		func() error { return sla.Seed(ctx, entity.SeedSLARecords()) },
		func() error { return users.Seed(ctx, entity.SeedUsers()) },
	}
	for _, seed := range seeds {
		if err := seed(); err != nil {
			return nil, err
		}
	}

	return &dbt.Stores{
		Inquiries: inquiries,
		Drivers:   drivers,
		Trips:     trips,
		Payables:  payables,
		SLA:       sla,
		Users:     users,
	}, nil
}
