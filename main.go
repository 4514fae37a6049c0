package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/acailability/acaibot/config"
	"github.com/acailability/acaibot/models"
	"github.com/acailability/acaibot/notify"
	"github.com/acailability/acaibot/router"
	"github.com/acailability/acaibot/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seed(db, cfg)

	if len(cfg.AdminIDs) == 0 {
		utils.InfoLogger.Println("Warning: ADMIN_IDS is empty, no operator commands will be accepted")
	}

	messenger := notify.NewRelayMessenger(cfg.RelaySendURL, cfg.RelayToken)
	r := router.SetupRouter(db, cfg, messenger)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Setting{},
		&models.Order{},
		&models.OrderItem{},
		&models.Operator{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seed installs the default shop flag and, if configured, the first
// dashboard operator. Both are idempotent across restarts.
func seed(db *gorm.DB, cfg config.App) {
	var setting models.Setting
	if err := db.Where(models.Setting{Key: models.SettingShopOpen}).
		Attrs(models.Setting{Value: "1"}).
		FirstOrCreate(&setting).Error; err != nil {
		utils.ErrorLogger.Printf("Error seeding shop flag: %v", err)
	}

	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		return
	}

	var count int64
	db.Model(&models.Operator{}).Where("email = ?", cfg.SeedEmail).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("Error hashing seed operator password: %v", err)
		return
	}

	operator := models.Operator{
		Name:     "Operator",
		Email:    cfg.SeedEmail,
		Password: string(hashed),
		ChatID:   cfg.SeedChatID,
	}
	if err := db.Create(&operator).Error; err != nil {
		utils.ErrorLogger.Printf("Error seeding operator: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded dashboard operator %s", operator.Email)
}
