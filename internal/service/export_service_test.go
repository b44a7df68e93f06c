package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
)

type stubRosterReader struct {
	rows []models.Registration
}

func (s *stubRosterReader) ListByEvent(_ context.Context, _ int64) ([]models.Registration, error) {
	return s.rows, nil
}

func newExportFixture(rows []models.Registration, event *models.Event) *ExportService {
	return NewExportService(&stubRosterReader{rows: rows}, &stubEventReader{event: event}, zap.NewNop())
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, format)

	format, err = ParseExportFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, format)

	_, err = ParseExportFormat("xlsx")
	require.Error(t, err)
}

func TestAttendanceCSV(t *testing.T) {
	rows := []models.Registration{
		{Role: models.RoleStaff, StudentID: "6401111", Name: "A", Phone: "081", Attended: true},
		{Role: models.RoleParticipant, StudentID: "6402222", Name: "B", Phone: "082"},
	}
	svc := newExportFixture(rows, &models.Event{ID: 5, Title: "Open House"})

	result, err := svc.Attendance(context.Background(), 5, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "event-5-attendance.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	body := string(result.Data)
	require.True(t, strings.HasPrefix(body, "\uFEFF"), "csv carries a UTF-8 BOM")
	body = strings.ReplaceAll(strings.TrimPrefix(body, "\uFEFF"), "\r\n", "\n")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Role,Student ID,Name,Phone,Attended", lines[0])
	assert.Contains(t, lines[1], "STAFF,6401111,A,081,Yes")
	assert.Contains(t, lines[2], "PARTICIPANT,6402222,B,082,No")
}

func TestAttendancePDF(t *testing.T) {
	rows := []models.Registration{
		{Role: models.RoleStaff, StudentID: "6401111", Name: "A", Phone: "081"},
	}
	svc := newExportFixture(rows, &models.Event{ID: 5, Title: "Open House"})

	result, err := svc.Attendance(context.Background(), 5, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "event-5-attendance.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestAttendanceUnknownEvent(t *testing.T) {
	svc := newExportFixture(nil, nil)

	_, err := svc.Attendance(context.Background(), 404, ExportFormatCSV)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
