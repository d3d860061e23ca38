package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/playmatatu/poolsim/internal/middleware"
)

// Prints an API key and the bcrypt hash to set as API_KEY_HASH.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = uuid.NewString()
		log.Printf("API_KEY not set; generated a random key")
	}

	hashed, err := middleware.HashAPIKey(apiKey)
	if err != nil {
		log.Fatalf("Failed to hash API key: %v", err)
	}

	fmt.Printf("API_KEY=%s\n", apiKey)
	fmt.Printf("API_KEY_HASH=%s\n", hashed)
}
