package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, d Deps) {
	h := NewHandler(d)

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger(h.log))
	app.Use(cors.New())

	app.Get("/health", h.Health)
	app.Get("/models", h.ListModels)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	limit := jsonBodyLimit(d.BodyLimit)
	app.Post("/ask", limit, h.AskQuestion)
	app.Post("/stt", h.SpeechToText)
	app.Post("/speak", limit, h.Speak)
}
