package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTP         ServerConfig
	GRPC         ServerConfig
	MySQL        MySQLConfig
	JWT          JWTConfig
	RefreshToken RefreshTokenConfig
	Password     PasswordConfig
	Log          LogConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN string
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// MaxRefreshTokenBytes keeps the hex encoded token within refresh_tokens.value VARCHAR(255).
const MaxRefreshTokenBytes = 127

type RefreshTokenConfig struct {
	TTLMonths  int
	ByteLength int
}

// ExpiresAt adds TTLMonths calendar months to now. When the target month is
// shorter, the day is clamped to its last day (Aug 31 + 6 months is Feb 28).
func (c RefreshTokenConfig) ExpiresAt(now time.Time) time.Time {
	year, month, day := now.Date()
	hour, minute, sec := now.Clock()

	firstOfTarget := time.Date(year, month+time.Month(c.TTLMonths), 1, hour, minute, sec, now.Nanosecond(), now.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return firstOfTarget.AddDate(0, 0, day-1)
}

type PasswordConfig struct {
	BcryptCost int
	Policy     PasswordPolicy
}

type LogConfig struct {
	Level  string
	Format string
}

type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasNumber = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	var missing []string
	if p.RequireUppercase && !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if p.RequireLowercase && !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if p.RequireNumber && !hasNumber {
		missing = append(missing, "number")
	}
	if p.RequireSpecial && !hasSpecial {
		missing = append(missing, "special character")
	}

	if len(missing) > 0 {
		return fmt.Errorf("password must contain at least one: %s", strings.Join(missing, ", "))
	}

	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	refreshTokenBytes := getIntEnv("REFRESH_TOKEN_BYTES", 70)
	if refreshTokenBytes < 1 || refreshTokenBytes > MaxRefreshTokenBytes {
		return nil, fmt.Errorf("REFRESH_TOKEN_BYTES must be between 1 and %d", MaxRefreshTokenBytes)
	}

	bcryptCost := getIntEnv("PASSWORD_BCRYPT_COST", 10)
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("PASSWORD_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &Config{
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", ""),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", ""),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		MySQL: MySQLConfig{
			DSN: mysqlDSN,
		},
		JWT: JWTConfig{
			Secret:         jwtSecret,
			AccessTokenTTL: getDurationEnv("JWT_ACCESS_TOKEN_TTL", 5*time.Minute),
		},
		RefreshToken: RefreshTokenConfig{
			TTLMonths:  getIntEnv("REFRESH_TOKEN_TTL_MONTHS", 6),
			ByteLength: refreshTokenBytes,
		},
		Password: PasswordConfig{
			BcryptCost: bcryptCost,
			Policy:     loadPasswordPolicy(),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQL.DSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv reads a whole number of minutes.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func loadPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        getIntEnv("PASSWORD_MIN_LENGTH", 6),
		RequireUppercase: getBoolEnv("PASSWORD_REQUIRE_UPPERCASE", false),
		RequireLowercase: getBoolEnv("PASSWORD_REQUIRE_LOWERCASE", false),
		RequireNumber:    getBoolEnv("PASSWORD_REQUIRE_NUMBER", false),
		RequireSpecial:   getBoolEnv("PASSWORD_REQUIRE_SPECIAL", false),
	}
}
