package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type exportService struct {
	deps Deps
}

func NewExportService(deps Deps) ExportService {
	return &exportService{deps: deps}
}

// ExportResults renders every completed assessment to an .xlsx report.
// Owner-only: the report exposes per-user scores.
func (s *exportService) ExportResults(ctx context.Context, actor string) ([]byte, error) {
	if actor != s.deps.OwnerIdentity {
		return nil, ErrNotOwner
	}

	assessments, err := s.deps.Repo.Assessment().ListByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed assessments: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"User", "Question Set", "Score", "Result Hash", "Started At", "Completed At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, assessment := range assessments {
		score := ""
		if assessment.Score != nil {
			score = strconv.Itoa(int(*assessment.Score))
		}
		resultHash := ""
		if assessment.ResultHash != nil {
			resultHash = assessment.ResultHash.String()
		}

		values := []interface{}{
			assessment.UserID,
			assessment.QuestionSetID,
			score,
			resultHash,
			assessment.StartedAt.Format(time.RFC3339),
			assessment.UpdatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render results export: %w", err)
	}

	s.deps.Logger.Info("Results exported", "assessments", len(assessments))
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditResultsExported, actor, "assessment", "",
		"completed assessment results exported",
		map[string]interface{}{"count": len(assessments)})

	return buf.Bytes(), nil
}
