package db

import (
	"fmt"
	"log"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/logger"
	"github.com/RomanKim94/foodgram/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the database selected by c.PostgresConfig.Driver: "postgres"
// (default) or "sqlite", where Path is the file name (":memory:" works).
func InitDB(c *entity.Config) error {
	dialector, err := dialectorFor(c.PostgresConfig)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	if c.PostgresConfig.Driver == "sqlite" {
		// sqlite allows one writer; a single connection also keeps :memory: alive.
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	logger.Info("database connection established", zap.String("driver", driverName(c.PostgresConfig)))
	return nil
}

func driverName(c entity.PostgresConfig) string {
	if c.Driver == "" {
		return "postgres"
	}
	return c.Driver
}

func dialectorFor(c entity.PostgresConfig) (gorm.Dialector, error) {
	switch driverName(c) {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		path := c.Path
		if path == "" {
			path = "foodgram.db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Migrate creates or updates every table. The recipe_tags join table is
// registered first so that Recipe.Tags uses model.RecipeTag.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Recipe{}, "Tags", &model.RecipeTag{}); err != nil {
		return fmt.Errorf("setup recipe_tags: %w", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Close() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Failed to retrieve sql.DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing the database connection: %v", err)
	}
}

func GetDBInstance() *gorm.DB {
	return DB
}
