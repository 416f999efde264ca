package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/sevnx/shift_backend/config"
	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("📝 No .env file found, using environment variables")
	}

	cfg := config.NewConfig()

	store, err := db.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer store.Close()
	log.Printf("🗄️ Database ready (%s)", store.Dialect())

	ctx := context.Background()
	if err := db.Migrate(ctx, store); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	if err := db.SeedIfEmpty(ctx, store); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	redisClient := config.NewRedisClient()
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("🔌 Redis unavailable, token revocation disabled: %v", err)
	}

	router := routes.Setup(cfg, store, redisClient)

	serverAddress := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("🚀 Server starting on %s", serverAddress)
	log.Fatal(http.ListenAndServe(serverAddress, router))
}
