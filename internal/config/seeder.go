package config

import (
	"log"

	"shoplite-catalog/internal/adapters/persistence/models"
	"shoplite-catalog/internal/pkg/password"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedRootCategories(); err != nil {
		log.Printf("⚠️ Category seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the initial admin user when none exists.
// Requires SEED_ADMIN_PASSWORD to be set; there is no hardcoded credential.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	if s.cfg.Seed.AdminPassword == "" {
		log.Println("⚠️ Skipping admin seed: SEED_ADMIN_PASSWORD not set")
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName: "Site",
		LastName:  "Admin",
		Username:  s.cfg.Seed.AdminUsername,
		Email:     s.cfg.Seed.AdminEmail,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		IsActive:  true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user: %s", admin.Username)
	return nil
}

// seedRootCategories seeds a few root categories on an empty catalog
func (s *Seeder) seedRootCategories() error {
	var count int64
	s.db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	names := []string{"Electronics", "Clothes", "Home and Kitchen"}
	for _, name := range names {
		category := &models.Category{
			Name:     name,
			Slug:     slug.Make(name),
			IsActive: true,
		}
		if err := s.db.Create(category).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d root categories", len(names))
	return nil
}
