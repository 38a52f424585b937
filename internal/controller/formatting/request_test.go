package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleRequest() model.ODRequest {
	remark := "ok, attach certificate later"
	decided := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	return model.ODRequest{
		ID:           uuid.MustParse("6f1c2d3e-0000-4000-8000-000000000001"),
		StudentID:    "21CS001",
		Semester:     3,
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartSession: model.SessionAfternoon,
		EndSession:   model.SessionFullDay,
		Description:  "Symposium",
		Status:       model.RequestStatusPending,
		Approvals: []model.Approval{
			{Name: model.ApprovalMentor, Status: model.RequestStatusApproved, Remark: &remark, DecidedAt: &decided},
			{Name: model.ApprovalHOD, Status: model.RequestStatusPending},
		},
		SubmittedAt: time.Date(2026, 2, 28, 9, 15, 0, 0, time.UTC),
	}
}

func TestGetStatusDisplay(t *testing.T) {
	tests := []struct {
		status model.RequestStatus
		emoji  string
	}{
		{model.RequestStatusPending, "⏳"},
		{model.RequestStatusApproved, "✅"},
		{model.RequestStatusRejected, "🚫"},
		{"Lost", "❓"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.emoji, GetStatusDisplay(tt.status).Emoji, string(tt.status))
	}
}

func TestFormatRequest(t *testing.T) {
	req := sampleRequest()
	text := FormatRequest(&req)

	assert.Contains(t, text, "Заявка #6f1c2d3e")
	assert.Contains(t, text, "02.03.2026 (после обеда) - 03.03.2026 (весь день)")
	assert.Contains(t, text, "✅ mentor: ok, attach certificate later (01.03.2026 14:30)")
	assert.Contains(t, text, "⏳ hod\n")
	assert.Contains(t, text, "Подана: 28.02.2026 09:15")
}

func TestFormatRequestList(t *testing.T) {
	assert.Equal(t, "Заявки\n\nЗаявок нет.", FormatRequestList("Заявки", nil, 5))

	requests := make([]model.ODRequest, 4)
	for i := range requests {
		requests[i] = sampleRequest()
	}

	text := FormatRequestList("Заявки", requests, 3)
	assert.True(t, strings.HasPrefix(text, "Заявки (4)"))
	assert.Equal(t, 3, strings.Count(text, "Заявка #"))
	assert.Contains(t, text, "… и ещё 1")

	text = FormatRequestList("Заявки", requests, 0)
	assert.Equal(t, 4, strings.Count(text, "Заявка #"))
}
