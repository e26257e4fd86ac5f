package cmd

import "time"

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret     string
	JWTIssuer     string
	JWTExpiration time.Duration

	StalePendingThreshold time.Duration
}
