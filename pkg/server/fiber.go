package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"healthapp/pkg/middleware"
)

func NewApp(name, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:           name,
		ReduceMemoryUsage: true,
		// Above the 5 MiB photo cap so oversized uploads get our 413
		// instead of fasthttp's connection reset.
		BodyLimit: 8 << 20,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(cors.New(middleware.CORSConfig(corsOrigins)))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}
