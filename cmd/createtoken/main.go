package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"axiapac.com/timeclock/config"
	"axiapac.com/timeclock/security"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml")
	subject := flag.String("subject", "timeclock-client", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	key, err := cfg.JWTKey()
	if err != nil {
		log.Fatalf("%v", err)
	}

	token, err := security.CreateServiceToken(*subject, key, *ttl)
	if err != nil {
		log.Fatalf("failed to create token: %v", err)
	}
	fmt.Println(token)
}
