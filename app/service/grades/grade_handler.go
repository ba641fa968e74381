package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"grade-stats/app/calculator"
)

// Helper untuk ambil id numerik dari path
func paramID(c *fiber.Ctx, param string) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, &InvalidArgumentError{Param: param, Value: c.Params("id")}
	}
	return id, nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("request_id").(string); ok {
		return id
	}
	return ""
}

func (s *GradeService) fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error":     err.Error(),
		"requestId": requestID(c),
	})
}

// respondError maps query errors onto HTTP statuses.
func (s *GradeService) respondError(c *fiber.Ctx, err error) error {
	var invalid *InvalidArgumentError
	var storage *StorageError

	switch {
	case errors.As(err, &invalid):
		return s.fail(c, fiber.StatusBadRequest, err)
	case errors.As(err, &storage):
		s.log.Error("grade store query failed",
			zap.String("request_id", requestID(c)),
			zap.String("subject", storage.Subject),
			zap.Int("id", storage.ID),
			zap.Error(storage.Err))
		if errors.Is(err, context.DeadlineExceeded) {
			return s.fail(c, fiber.StatusGatewayTimeout, err)
		}
		return s.fail(c, fiber.StatusInternalServerError, err)
	}
	return s.fail(c, fiber.StatusInternalServerError, err)
}

// === GET /stats/:id ===
func (s *GradeService) GetClassStats(c *fiber.Ctx) error {
	classID, err := paramID(c, "class id")
	if err != nil {
		return s.respondError(c, err)
	}

	summary, err := s.ClassStats(c.UserContext(), classID)
	if errors.Is(err, calculator.ErrEmptyResultSet) {
		return s.fail(c, fiber.StatusNotFound, fmt.Errorf("class %d: %w", classID, err))
	}
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(summary)
}

// === GET /stats/:id/learners ===
func (s *GradeService) GetClassLearners(c *fiber.Ctx) error {
	classID, err := paramID(c, "class id")
	if err != nil {
		return s.respondError(c, err)
	}

	learners, err := s.ClassLearnerAverages(c.UserContext(), classID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(learners)
}

// === GET /learner/:id/avg-class ===
func (s *GradeService) GetLearnerClassAverages(c *fiber.Ctx) error {
	learnerID, err := paramID(c, "learner id")
	if err != nil {
		return s.respondError(c, err)
	}

	averages, err := s.LearnerClassAverages(c.UserContext(), learnerID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(averages)
}
