package main

import (
	"log"

	"github.com/joho/godotenv"

	"facegate/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	application := app.NewApp()
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run recognition loop: %v", err)
	}
}
