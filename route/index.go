package route

import (
	"github.com/gofiber/fiber/v2"

	service "grade-stats/app/service/grades"
	"grade-stats/middleware"
)

// SetupGradeRoutes mounts the grade statistics endpoints under prefix.
func SetupGradeRoutes(app *fiber.App, prefix, jwtSecret string, gradeService *service.GradeService) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	grades := app.Group(prefix, middleware.AuthRequired(jwtSecret))

	// Class statistics
	grades.Get("/stats/:id", gradeService.GetClassStats)
	grades.Get("/stats/:id/learners", gradeService.GetClassLearners)
	grades.Get("/stats/:id/export", gradeService.ExportClassReport)

	// Learner averages
	grades.Get("/learner/:id/avg-class", gradeService.GetLearnerClassAverages)
}
