package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment. When env file paths are
// given, the first one that loads wins; otherwise a plain .env in the working
// directory is tried. A missing file is not an error, the process environment
// always applies.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	loaded := false
	for _, path := range envFilePath {
		if err := godotenv.Load(path); err != nil {
			logger.Debug("env file not loaded", "path", path, "error", err)
			continue
		}
		logger.Info("environment loaded from file", "path", path)
		loaded = true
		break
	}
	if !loaded && len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using system environment")
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("config loaded",
		"env", cfg.Env,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"jwt_expiry", cfg.Jwt.Expiry,
		"currency", cfg.Ledger.Currency,
	)
	return &cfg, nil
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:3] + "****" + v[len(v)-3:]
}
