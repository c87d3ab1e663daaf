package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graphql/config"
	"github.com/d60-Lab/social-graphql/internal/model"
)

// InitDB opens the configured store, migrates the schema and seeds the fixed
// member type rows.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dial = postgres.Open(cfg.Database.DSN)
	case "sqlite", "":
		dial = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedMemberTypes(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Post{},
		&model.MemberType{},
		&model.Subscription{},
	)
}

// SeedMemberTypes inserts the closed tier set. Idempotent; the tiers are never
// written through the API.
func SeedMemberTypes(db *gorm.DB) error {
	seed := []model.MemberType{
		{ID: model.MemberTypeBasic, Discount: 5, PostsLimitPerMonth: 20},
		{ID: model.MemberTypeBusiness, Discount: 10, PostsLimitPerMonth: 100},
	}
	for i := range seed {
		if err := db.Where("id = ?", seed[i].ID).FirstOrCreate(&seed[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
