// Package config loads API credentials from the environment, with an
// optional .env file in the working directory.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	GroqSTTKey   string
	OpenAISTTKey string
	OpenAITTSKey string
}

// Load reads a .env file if one exists, then the process environment.
// Variables already set in the environment win over the file.
func Load() *Config {
	godotenv.Load()
	return &Config{
		GroqSTTKey:   os.Getenv("GROQ_API_KEY_STT"),
		OpenAISTTKey: os.Getenv("OPENAI_API_KEY_STT"),
		OpenAITTSKey: os.Getenv("OPENAI_API_KEY_TTS"),
	}
}
