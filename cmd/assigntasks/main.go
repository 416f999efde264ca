package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"github.com/sevnx/shift_backend/config"
	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/repositories"
	"github.com/sevnx/shift_backend/internal/services/assign"
)

// Раздает задачи всем сменам на дату. Используется для заполнения
// пропусков, когда менеджер создал смены без чек-листов.
func main() {
	date := flag.String("date", time.Now().Format("2006-01-02"), "shift date (YYYY-MM-DD)")
	flag.Parse()

	if _, err := time.Parse("2006-01-02", *date); err != nil {
		log.Fatalf("❌ Invalid date %q, expected YYYY-MM-DD", *date)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("📝 No .env file found, using environment variables")
	}
	cfg := config.NewConfig()

	store, err := db.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, store); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	shiftRepo := repositories.NewShiftRepository(store)
	taskRepo := repositories.NewTaskRepository(store)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	assigner := assign.New(shiftRepo, taskRepo, rnd)
	updated, err := assigner.AssignDate(ctx, *date)
	if err != nil {
		log.Fatalf("❌ Assign failed: %v", err)
	}
	log.Printf("🎉 Assigned tasks to %d shifts on %s", updated, *date)
}
