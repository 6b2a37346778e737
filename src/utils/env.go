package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const ProjectName = "put-finder"

// InitEnvironmentVariables loads .env.<goEnv> from $PROJECTS_DIR/put-finder. Variables that
// are already set are never overridden, and a missing file is only an error in production.
func InitEnvironmentVariables(goEnv string) error {
	if goEnv == "" {
		goEnv = "development"
	}

	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Debug("PROJECTS_DIR not set, skipping .env file")
		return nil
	}

	envFile := filepath.Join(projectsDir, ProjectName, fmt.Sprintf(".env.%s", goEnv))

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		if goEnv == "production" {
			return fmt.Errorf("InitEnvironmentVariables: %s not found", envFile)
		}

		log.Debugf("no env file at %s", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("InitEnvironmentVariables: failed to load %s file: %w", envFile, err)
	}

	log.Debugf("loaded environment from %s", envFile)

	return nil
}

func GetEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("missing %s environment variable", key)
	}

	return value, nil
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
