package bootstrap

import (
	"log"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.AdminUser{},
		&model.Assignment{},
		&model.Grade{},
		&model.ParentChild{},
		&model.AdminAuditLog{},
		&model.PasswordResetRequest{},
	)
}

// SeedSuperAdmin creates the default SuperAdmin account for development
// environments so the admin panel is reachable on a fresh database.
func SeedSuperAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.AdminUser{}).
		Where("username = ?", "superadmin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("SuperAdmin already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.AdminUser{
		Username:     "superadmin",
		Email:        "admin@smarttales.app",
		FirstName:    "Super",
		LastName:     "Admin",
		PasswordHash: string(hashedPasswordBytes),
		Role:         model.AdminRoleSuperAdmin,
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("✅ SuperAdmin seeded successfully")
	log.Println("   Username: superadmin")
	log.Println("   Password: admin123")

	return nil
}
