package app

import (
	"strings"

	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AllowedOrigins []string
	HTTPAddr       string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	origins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000", log)
	port := utils.GetEnv("HTTP_PORT", "8080", log)

	allowed := make([]string, 0)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		JWTSecretKey:   jwtSecretKey,
		AllowedOrigins: allowed,
		HTTPAddr:       ":" + port,
	}
}
