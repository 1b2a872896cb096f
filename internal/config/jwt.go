package config

import "fmt"

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// JWT returns the token configuration. It fails when no secret is configured.
func (c *Config) JWT() (*JWTConfig, error) {
	jwt := &JWTConfig{Secret: c.JWTSecret, ExpirationHours: c.JWTExpirationHours}
	if err := jwt.normalize(); err != nil {
		return nil, err
	}
	return jwt, nil
}

// AuthEnabled reports whether bearer authentication should guard the API.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt_secret is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("jwt_expiration_hours must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
