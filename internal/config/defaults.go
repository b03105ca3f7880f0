package config

import "time"

// Default values applied to fields no source has set.
const (
	DefaultTokenIssuer        = "go-job-tracker"
	DefaultTokenDuration      = 30 * 24 * time.Hour
	DefaultResetTokenDuration = 15 * time.Minute
	DefaultBcryptCost         = 10
	DefaultUploadDir          = "uploads"
	DefaultHTTPAddress        = ":5000"
	DefaultRequestTimeout     = 15 * time.Second
	DefaultAuthRateLimit      = 5
	DefaultAuthRateBurst      = 10
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:        DefaultTokenIssuer,
			TokenDuration:      DefaultTokenDuration,
			ResetTokenDuration: DefaultResetTokenDuration,
			BcryptCost:         DefaultBcryptCost,
		},
		Storage: Storage{
			Files: Files{
				UploadDir: DefaultUploadDir,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			AuthRateLimit:  DefaultAuthRateLimit,
			AuthRateBurst:  DefaultAuthRateBurst,
		},
	}
}
