package main

import (
	"log"

	_ "flashdeck/docs"
	"flashdeck/internal/config"
	"flashdeck/internal/server"
)

// @title           Flashdeck API
// @version         1.0
// @description     API for managing flashcard decks, cards, and AI generation.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
