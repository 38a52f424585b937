package repository

import (
	"context"

	"github.com/Freeeeeet/od_index/internal/directory"
	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ directory.Store = (*Store)(nil)

// Store собирает репозитории в хранилище для directory.Directory
type Store struct {
	students *StudentRepository
	teachers *TeacherRepository
	requests *ODRequestRepository
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		students: NewStudentRepository(pool),
		teachers: NewTeacherRepository(pool),
		requests: NewODRequestRepository(pool),
	}
}

func (s *Store) ListStudents(ctx context.Context) ([]*model.Student, error) {
	return s.students.List(ctx)
}

func (s *Store) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

func (s *Store) ListStudentIDsByMentor(ctx context.Context, teacherID string) ([]string, error) {
	return s.students.ListIDsByMentor(ctx, teacherID)
}

func (s *Store) ListStudentIDsByClassAdvisor(ctx context.Context, teacherID string) ([]string, error) {
	return s.students.ListIDsByClassAdvisor(ctx, teacherID)
}

func (s *Store) ListTeachers(ctx context.Context) ([]*model.Teacher, error) {
	return s.teachers.List(ctx)
}

func (s *Store) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

func (s *Store) GetAdmin(ctx context.Context) (*model.Admin, error) {
	return s.teachers.GetAdmin(ctx)
}

func (s *Store) ListRequestsByStudent(ctx context.Context, studentID string) ([]*model.ODRequest, error) {
	return s.requests.ListByStudent(ctx, studentID)
}

func (s *Store) CreateRequest(ctx context.Context, req *model.ODRequest) error {
	return s.requests.Create(ctx, req)
}

func (s *Store) UpdateRequest(ctx context.Context, id uuid.UUID, update *model.ODRequestUpdate) (*model.ODRequest, error) {
	return s.requests.Update(ctx, id, update)
}
