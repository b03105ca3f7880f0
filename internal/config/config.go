// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"strings"
	"time"
)

// StructuredConfig is the top-level configuration of the job tracker server.
// It is populated by merging a .env file, environment variables,
// command-line flags, an optional JSON file and finally defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token and password hashing settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database and attachment storage settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener, request deadline and rate limit settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings that control authentication.
type App struct {
	// TokenSignKey is the HMAC key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of session tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// ResetTokenDuration is the lifetime of password reset tokens.
	// Env: APP_RESET_TOKEN_DURATION
	ResetTokenDuration time.Duration `env:"RESET_TOKEN_DURATION"`

	// BcryptCost is the work factor of password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is reported by the health endpoint. Normally set from the
	// build information at startup.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration of all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the attachment storage settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by scheme: "postgres://…" / "postgresql://…"
	// for PostgreSQL through pgx, "sqlite://path" for SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// IsSQLite reports whether DSN points at a SQLite database.
func (db DB) IsSQLite() bool {
	return strings.HasPrefix(db.DSN, SQLiteScheme)
}

// SQLitePath returns DSN without the sqlite:// scheme.
func (db DB) SQLitePath() string {
	return strings.TrimPrefix(db.DSN, SQLiteScheme)
}

// SQLiteScheme prefixes SQLite DSNs.
const SQLiteScheme = "sqlite://"

// Files holds attachment storage settings. When S3.Bucket is set attachments
// go to the bucket, otherwise to UploadDir.
type Files struct {
	// UploadDir is the local directory attachments are written to.
	// Env: STORAGE_FILES_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`

	// S3 holds the S3-compatible object storage settings.
	S3 S3 `envPrefix:"S3_"`
}

// S3 holds the settings of an S3-compatible bucket (AWS, MinIO).
type S3 struct {
	// Env: STORAGE_FILES_S3_BUCKET
	Bucket string `env:"BUCKET"`
	// Env: STORAGE_FILES_S3_REGION
	Region string `env:"REGION"`
	// Endpoint overrides the AWS endpoint, e.g. "http://localhost:9000" for MinIO.
	// Env: STORAGE_FILES_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: STORAGE_FILES_S3_ACCESS_KEY
	AccessKey string `env:"ACCESS_KEY"`
	// Env: STORAGE_FILES_S3_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`
}

// Enabled reports whether attachments should be stored in S3.
func (s S3) Enabled() bool {
	return s.Bucket != ""
}

// Server holds settings of the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on ("host:port" or ":port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the deadline applied to every request context.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthRateLimit is the sustained requests per second allowed per client
	// IP on the /api/auth routes.
	// Env: SERVER_AUTH_RATE_LIMIT
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT"`

	// AuthRateBurst is the burst size of the auth rate limiter.
	// Env: SERVER_AUTH_RATE_BURST
	AuthRateBurst int `env:"AUTH_RATE_BURST"`
}

// GetStructuredConfig loads, merges and validates the configuration.
// For every field the first source with a non-zero value wins:
//  1. Environment variables (a .env file in the working directory is loaded
//     first and never overrides variables already set)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
