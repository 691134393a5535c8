package database

import (
	"fmt"
	"log"

	"greencampus/config"
	"greencampus/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the MySQL connection, migrates the schema and seeds the
// defaults an empty portal needs to be usable.
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Page{},
		&models.Board{},
		&models.Category{},
		&models.Post{},
		&models.EnergyData{},
		&models.SolarData{},
		&models.HeroSlide{},
		&models.UploadFile{},
		&models.PasswordReset{},
	); err != nil {
		return err
	}

	seedDefaults()

	log.Println("database initialized")
	return nil
}

// seedDefaults creates the records an empty install needs: one admin
// account and the notice board every campus site starts with. Seeding only
// runs when the corresponding table is empty.
func seedDefaults() {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		admin := models.User{
			Username: "admin",
			IsAdmin:  true,
			Status:   models.UserStatusActive,
		}
		if err := admin.SetPassword("admin1234"); err == nil {
			if err := DB.Create(&admin).Error; err == nil {
				log.Println("seeded default admin account (username: admin) - change the password")
			}
		}
	}

	var boardCount int64
	DB.Model(&models.Board{}).Count(&boardCount)
	if boardCount == 0 {
		notice := models.Board{
			Slug:        "notice",
			Name:        "Notice",
			Description: "Campus sustainability announcements",
		}
		if err := DB.Create(&notice).Error; err == nil {
			menu := models.Menu{
				Name:      "Notice",
				URL:       "/boards/notice",
				Kind:      models.MenuKindBoard,
				BoardID:   &notice.ID,
				SortOrder: 0,
				IsActive:  true,
			}
			_ = DB.Create(&menu).Error
		}
	}
}

// GetDB returns the database handle.
func GetDB() *gorm.DB {
	return DB
}
