package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/Deepanshumelkani77/Grievance-system/internal/constants"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl string

	// SendGrid for complaint notifications
	SendGridAPIKey      string
	SendgridFromEmail   string
	SendgridSandboxMode bool

	// Auth
	RSAPrivateKey  *rsa.PrivateKey
	RSAPublicKey   *rsa.PublicKey
	AccessTokenTTL time.Duration

	SeedDefaultUsers bool
}

const defaultAccessTokenTTL = 12 * time.Hour

// LoadConfig reads configuration from the environment, with a best-effort
// .env load for local development. Any missing required value is fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, reading configuration from environment")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		appUrl = "http://localhost:" + appPort
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL missing in environment")
	}

	privB64 := os.Getenv("RSA_PRIVATE_KEY_BASE64")
	if privB64 == "" {
		utils.Logger.Fatal("RSA_PRIVATE_KEY_BASE64 missing in environment")
	}
	privPEM, _ := base64.StdEncoding.DecodeString(privB64)
	if block, _ := pem.Decode(privPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for private key")
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 missing in environment")
	}
	pubPEM, _ := base64.StdEncoding.DecodeString(pubB64)
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	sgAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sgAPIKey == "" {
		utils.Logger.Fatal("SENDGRID_API_KEY missing in environment")
	}
	sgFromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if sgFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL missing in environment")
	}
	sgSandbox, _ := strconv.ParseBool(os.Getenv("SENDGRID_SANDBOX_MODE"))

	tokenTTL := defaultAccessTokenTTL
	if ttlStr := os.Getenv("ACCESS_TOKEN_TTL"); ttlStr != "" {
		parsed, pErr := time.ParseDuration(ttlStr)
		if pErr != nil {
			utils.Logger.WithError(pErr).Fatal("Invalid ACCESS_TOKEN_TTL")
		}
		tokenTTL = parsed
	}

	seedDefaults, _ := strconv.ParseBool(os.Getenv("SEED_DEFAULT_USERS"))

	return &Config{
		OrganizationName:    constants.OrganizationName,
		AppName:             "grievance-service",
		AppPort:             appPort,
		AppUrl:              appUrl,
		DBUrl:               dbURL,
		SendGridAPIKey:      sgAPIKey,
		SendgridFromEmail:   sgFromEmail,
		SendgridSandboxMode: sgSandbox,
		RSAPrivateKey:       privKey,
		RSAPublicKey:        pubKey,
		AccessTokenTTL:      tokenTTL,
		SeedDefaultUsers:    seedDefaults,
	}
}
