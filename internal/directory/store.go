package directory

import (
	"context"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/google/uuid"
)

// Store долговременное хранилище, источник истины для индекса.
// Get-методы возвращают nil, nil если записи нет.
type Store interface {
	ListStudents(ctx context.Context) ([]*model.Student, error)
	GetStudent(ctx context.Context, id string) (*model.Student, error)
	ListStudentIDsByMentor(ctx context.Context, teacherID string) ([]string, error)
	ListStudentIDsByClassAdvisor(ctx context.Context, teacherID string) ([]string, error)

	ListTeachers(ctx context.Context) ([]*model.Teacher, error)
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)

	GetAdmin(ctx context.Context) (*model.Admin, error)

	ListRequestsByStudent(ctx context.Context, studentID string) ([]*model.ODRequest, error)
	// CreateRequest сохраняет заявку и заполняет ID и SubmittedAt
	CreateRequest(ctx context.Context, req *model.ODRequest) error
	// UpdateRequest атомарно применяет обновление и возвращает итоговую запись
	UpdateRequest(ctx context.Context, id uuid.UUID, update *model.ODRequestUpdate) (*model.ODRequest, error)
}
