package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"grade-stats/app/calculator"
	models "grade-stats/app/models/mongodb"
)

const (
	summarySheet  = "Summary"
	learnersSheet = "Learners"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ClassReport builds an xlsx workbook with the class summary and the
// per-learner averages behind it.
func (s *GradeService) ClassReport(ctx context.Context, classID int) (*bytes.Buffer, error) {
	learners, err := s.ClassLearnerAverages(ctx, classID)
	if err != nil {
		return nil, err
	}
	summary, err := calculator.Summarize(learners)
	if err != nil {
		return nil, err
	}
	return writeClassReport(classID, summary, learners)
}

func writeClassReport(classID int, summary models.ClassSummary, learners []models.LearnerAverage) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	rows := [][]interface{}{
		{"Class", classID},
		{"Total learners", summary.TotalLearners},
		{"Above 70", summary.Above70},
		{"Percentage above 70", summary.PercentageAbove70},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(learnersSheet); err != nil {
		return nil, err
	}
	header := []interface{}{"Learner", "Weighted average", "Passed"}
	if err := f.SetSheetRow(learnersSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, l := range learners {
		passed := "no"
		if calculator.Passed(l.Avg) {
			passed = "yes"
		}
		row := []interface{}{l.LearnerID, l.Avg, passed}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(learnersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write learner %d: %w", l.LearnerID, err)
		}
	}

	return f.WriteToBuffer()
}

// === GET /stats/:id/export ===
func (s *GradeService) ExportClassReport(c *fiber.Ctx) error {
	classID, err := paramID(c, "class id")
	if err != nil {
		return s.respondError(c, err)
	}

	buf, err := s.ClassReport(c.UserContext(), classID)
	if errors.Is(err, calculator.ErrEmptyResultSet) {
		return s.fail(c, fiber.StatusNotFound, fmt.Errorf("class %d: %w", classID, err))
	}
	if err != nil {
		return s.respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="class-%d-report.xlsx"`, classID))
	return c.Send(buf.Bytes())
}
