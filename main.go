package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("fit-health-api: ")

	// .env is optional: in deployed environments the variables are set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env: %v", err)
	}

	cfg, err := loadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.DBURL == "" {
		log.Fatal("DB_URL is required")
	}

	h, err := newHandler(getDBPool(cfg.DBURL), cfg)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	defer h.db.Close()

	if err := registerValidators(); err != nil {
		log.Fatalf("Validator setup error: %v", err)
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	log.Printf("Listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
