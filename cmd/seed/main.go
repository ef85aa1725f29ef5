// Command seed creates the platform admin account and, optionally, a demo
// merchant with an active subscription for local development.
package main

import (
	"log"
	"os"
	"time"

	"sjfs/internal/config"
	"sjfs/internal/models"
	"sjfs/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	seedAdmin(adminEmail, adminPassword)

	if os.Getenv("SEED_DEMO") == "true" {
		seedDemoMerchant()
	}
}

func seedAdmin(email, password string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Platform admin already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Platform Admin",
		Role:     models.RolePlatformAdmin,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create platform admin:", err)
	}
	log.Println("✅ Platform admin created successfully!")
}

func seedDemoMerchant() {
	var existing models.Merchant
	if err := repositories.DB.Where("business_email = ?", "demo@sjfs.local").First(&existing).Error; err == nil {
		log.Println("Demo merchant already exists")
		return
	}

	merchant := models.Merchant{
		BusinessName:     "Demo Fulfillment Co",
		BusinessEmail:    "demo@sjfs.local",
		OnboardingStatus: "ACTIVE",
	}
	if err := repositories.DB.Create(&merchant).Error; err != nil {
		log.Fatal("Failed to create demo merchant:", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("demo-password!"), bcrypt.DefaultCost)
	admin := models.User{
		Email:      "demo-admin@sjfs.local",
		Password:   string(hashed),
		Name:       "Demo Admin",
		Role:       models.RoleMerchantAdmin,
		MerchantID: &merchant.ID,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create demo merchant admin:", err)
	}

	sub := models.Subscription{
		MerchantID: merchant.ID,
		PlanName:   "Standard",
		BasePrice:  500,
		Status:     models.SubscriptionStatusActive,
		StartedAt:  time.Now(),
	}
	if err := repositories.DB.Create(&sub).Error; err != nil {
		log.Fatal("Failed to create demo subscription:", err)
	}

	log.Println("✅ Demo merchant seeded successfully!")
}
