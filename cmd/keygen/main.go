package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/planning-view-go/internal/config"
	"github.com/arnavshah/planning-view-go/pkg/auth"
)

func main() {
	cfg := config.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <userID>")
		os.Exit(1)
	}

	userID := os.Args[1]
	if cfg.Auth.MasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	apiKey := auth.New(cfg.Auth).GenerateHMACKey(userID)
	fmt.Printf("Generated Key for %s:\n%s\n", userID, apiKey)
	fmt.Printf("Preview: %s\n", auth.KeyPreview(apiKey))
}
