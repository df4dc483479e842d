package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have a .env file
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	dbConnString := os.Getenv("DATABASE_CONNECTION_STRING")
	jwtSecret := os.Getenv("JWT_SECRET")
	environment := os.Getenv("ENVIRONMENT")

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if dbConnString == "" {
		return nil, fmt.Errorf("DATABASE_CONNECTION_STRING environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	return &Config{
		OpenAIKey:    openaiKey,
		DBConnString: dbConnString,
		JWTSecret:    jwtSecret,
		Environment:  environment,
	}, nil
}
