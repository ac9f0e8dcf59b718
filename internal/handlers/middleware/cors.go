package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS configura CORS para o dashboard (lista separada por vírgula, "*" libera tudo)
func CORS(allowedOrigins string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			// Credenciais exigem ecoar a origem em vez de "*"
			config.AllowOriginFunc = func(string) bool { return true }
			return cors.New(config)
		}
		if o != "" {
			origins = append(origins, o)
		}
	}

	if len(origins) == 0 {
		config.AllowOriginFunc = func(string) bool { return false }
		return cors.New(config)
	}

	config.AllowOrigins = origins
	return cors.New(config)
}
