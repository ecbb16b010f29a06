package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"wear-simulator/cmd"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		wd, err := os.Getwd()
		if err != nil {
			log.Printf("Warning: Could not get working directory: %v", err)
		} else {
			log.Printf("Current working directory: %s", wd)
		}

		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
			if source := os.Getenv("CATALOG_SOURCE"); source != "" {
				log.Printf("DEBUG: CATALOG_SOURCE after loading .env: %s", source)
			}
		}
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
