package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"fleetpanel/internal/config"
	"fleetpanel/internal/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a throwaway sqlite database
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	tmpDir := os.TempDir()
	testDBPath := fmt.Sprintf("%s/fleetpanel_test_%d.db", tmpDir, time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "24h",
			Issuer:    "fleetpanel-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 10,
		},
	}

	err := models.InitDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if models.DB != nil {
			if sqlDB, err := models.DB.DB(); err == nil {
				sqlDB.Close()
			}
			os.Remove(testDBPath)
		}
		models.DB = nil
	})

	return cfg
}

func testMeta() RequestMeta {
	return RequestMeta{IP: "127.0.0.1", UserAgent: "go-test"}
}

func validInput() *RegistrationInput {
	return &RegistrationInput{
		Login:    "newuser1",
		Password: "secret-password",
		FullName: "New User",
		Phone:    "8(912)345-67-89",
		Email:    "newuser@example.com",
	}
}
