package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Credentials holds translator secrets read from the environment.
type Credentials struct {
	APIKey   string `env:"TUIKIT_RAPIDAPI_KEY"`
	Host     string `env:"TUIKIT_RAPIDAPI_HOST" envDefault:"text-translator5.p.rapidapi.com"`
	Endpoint string `env:"TUIKIT_TRANSLATE_ENDPOINT"`
}

// LoadCredentials loads optional .env files, then parses the environment.
// Variables already set in the environment win over .env values.
func LoadCredentials(envFiles ...string) (Credentials, error) {
	for _, path := range envFiles {
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return creds, nil
}
