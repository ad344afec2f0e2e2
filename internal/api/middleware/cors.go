package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	corsgin "github.com/rs/cors/wrapper/gin"
)

// CORS allows browser clients on other origins to call the API.
func CORS() gin.HandlerFunc {
	return corsgin.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
}
