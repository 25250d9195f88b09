package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	// Try to load .env file - ignore error if it doesn't exist (CI environment)
	_ = godotenv.Load()

	// The CLI tests exercise the built-in results, never the model
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("CAREERVIEW_LLM_API_KEY")

	os.Exit(m.Run())
}
