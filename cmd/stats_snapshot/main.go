package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"hotel/internal/database"
	"hotel/internal/modules/stats"
	"hotel/internal/repository"

	"github.com/joho/godotenv"
)

// Writes the monthly statistic rows. Defaults to the previous calendar month,
// so it can run from cron on the 1st.
func main() {
	_ = godotenv.Load()

	prev := time.Now().UTC().AddDate(0, -1, 0)
	year := flag.Int("year", prev.Year(), "year to snapshot")
	month := flag.Int("month", int(prev.Month()), "month to snapshot (1-12)")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := stats.NewService(repository.NewReportRepository(db), log.Printf)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rows, err := svc.Snapshot(ctx, *year, *month)
	if err != nil {
		log.Fatalf("snapshot %04d-%02d failed: %v", *year, *month, err)
	}

	log.Printf("stats snapshot completed: period=%04d-%02d rows=%d", *year, *month, len(rows))
}
