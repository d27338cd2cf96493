package middleware

import (
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORSConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: "POST,GET,DELETE,PUT,PATCH,OPTIONS",
		AllowHeaders: "Content-Type,Cache-Control,Pragma,Authorization",
	}
}
