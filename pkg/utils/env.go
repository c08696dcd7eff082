package utils

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from multiple .env files
// Returns a map of environment variables. Variables already set in the process win over
// file values, and earlier files win over later ones
func LoadEnv(files ...string) map[string]string {
	config := make(map[string]string)

	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				log.Printf("[UTILS]: Warning, could not load %s: %v", file, err)
			}
		}
	}

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if ok && key != "" {
			config[key] = value
		}
	}

	return config
}
