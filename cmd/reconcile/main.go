package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"axiapac.com/timeclock/app"
	"axiapac.com/timeclock/utils"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml")
	start := flag.String("start", "", "first work date, yyyy-mm-dd (default yesterday)")
	end := flag.String("end", "", "last work date, yyyy-mm-dd (default today)")
	flag.Parse()
	_ = godotenv.Load()

	ctx := context.Background()
	a, err := app.New(ctx, *configPath)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer a.Close()

	now := time.Now().In(a.Location)
	startDate, err := dateFlag(*start, now.AddDate(0, 0, -1), a.Location)
	if err != nil {
		log.Fatalf("invalid -start: %v", err)
	}
	endDate, err := dateFlag(*end, now, a.Location)
	if err != nil {
		log.Fatalf("invalid -end: %v", err)
	}

	result, err := a.Reconciler.Reconcile(ctx, startDate, endDate)
	if err != nil {
		log.Fatalf("reconcile failed: %v", err)
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}

func dateFlag(value string, fallback time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return utils.ParseDateIn(value, loc)
}
