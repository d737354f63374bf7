package main

import (
	"guidehub_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine in production; config falls back to the yaml file.
	_ = godotenv.Load()

	app.Run()
}
