package fiber

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"grade-stats/middleware"
)

// SetupFiber builds the app with request ids, access logging, panic recovery
// and a JSON error handler.
func SetupFiber(log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "grade-stats",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())

	return app
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		id, _ := c.Locals("request_id").(string)
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("request_id", id), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error(), "requestId": id})
	}
}
