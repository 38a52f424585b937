package handlers

import (
	"testing"

	"github.com/Freeeeeet/od_index/internal/directory"
	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDirectory struct {
	owner    map[string][]model.ODRequest
	relation map[directory.RelationKind][]model.ODRequest
	err      error
	stats    directory.Stats

	lastSemester int
}

func (f *fakeDirectory) OwnerRequests(studentID string) ([]model.ODRequest, error) {
	return f.owner[studentID], f.err
}

func (f *fakeDirectory) OwnerPeriodRequests(studentID string, semester int) ([]model.ODRequest, error) {
	f.lastSemester = semester
	var out []model.ODRequest
	for _, r := range f.owner[studentID] {
		if r.Semester == semester {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeDirectory) RelationshipRequests(_ string, kind directory.RelationKind) ([]model.ODRequest, error) {
	return f.relation[kind], f.err
}

func (f *fakeDirectory) Stats() directory.Stats {
	return f.stats
}

func request(student string, semester int) model.ODRequest {
	return model.ODRequest{ID: uuid.New(), StudentID: student, Semester: semester, Status: model.RequestStatusPending}
}

func TestODReply(t *testing.T) {
	dir := &fakeDirectory{owner: map[string][]model.ODRequest{
		"21CS001": {request("21CS001", 2), request("21CS001", 3), request("21CS001", 3)},
	}}
	h := NewHandlers(dir, zap.NewNop())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no args", "/od", "Использование"},
		{"too many args", "/od a 1 2", "Использование"},
		{"bad semester", "/od 21CS001 x", "положительным числом"},
		{"all semesters", "/od 21CS001", "Заявки студента 21CS001 (3)"},
		{"one semester", "/od 21CS001 3", "семестр 3 (2)"},
		{"unknown student", "/od ghost", "Заявок нет."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, h.ODReply(tt.text), tt.want)
		})
	}
	assert.Equal(t, 3, dir.lastSemester)
}

func TestODReplyNotReady(t *testing.T) {
	h := NewHandlers(&fakeDirectory{err: directory.ErrNotReady}, zap.NewNop())
	assert.Equal(t, notReadyText, h.ODReply("/od 21CS001"))
}

func TestRelationshipReply(t *testing.T) {
	dir := &fakeDirectory{relation: map[directory.RelationKind][]model.ODRequest{
		directory.RelationMentee:       {request("A", 1)},
		directory.RelationClassStudent: {request("A", 1), request("B", 1)},
	}}
	h := NewHandlers(dir, zap.NewNop())

	assert.Contains(t, h.RelationshipReply("/mentees T1", directory.RelationMentee), "подопечных T1 (1)")
	assert.Contains(t, h.RelationshipReply("/class T1", directory.RelationClassStudent), "группы T1 (2)")
	assert.Contains(t, h.RelationshipReply("/class", directory.RelationClassStudent), "/class <учитель>")
	assert.Contains(t, h.RelationshipReply("/mentees", directory.RelationMentee), "/mentees <учитель>")
}

func TestStatsReply(t *testing.T) {
	h := NewHandlers(&fakeDirectory{stats: directory.Stats{
		State:          directory.StateReady,
		Owners:         120,
		Holders:        9,
		Degraded:       1,
		CachedRequests: 300,
	}}, zap.NewNop())

	text := h.StatsReply()
	assert.Contains(t, text, "Индекс: ready")
	assert.Contains(t, text, "Студентов: 120")
	assert.Contains(t, text, "Без истории: 1")
}
