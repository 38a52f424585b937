package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/Freeeeeet/od_index/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `id, name, email, role, COALESCE(current_semester, 0), prior_semesters, mentor_id, class_advisor_id`

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	var s model.Student
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Role,
		&s.CurrentSemester,
		&s.PriorSemesters,
		&s.MentorID,
		&s.ClassAdvisorID,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List получает всех студентов
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM users
		WHERE role = $1
		ORDER BY id
	`

	rows, err := r.Pool().Query(ctx, query, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM users
		WHERE id = $1 AND role = $2
	`

	s, err := scanStudent(r.Pool().QueryRow(ctx, query, id, model.RoleStudent))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return s, nil
}

// ListIDsByMentor получает ID подопечных учителя
func (r *StudentRepository) ListIDsByMentor(ctx context.Context, teacherID string) ([]string, error) {
	query := `
		SELECT id
		FROM users
		WHERE role = $1 AND mentor_id = $2
		ORDER BY id
	`

	ids, err := base.CollectStrings(r.Pool().Query(ctx, query, model.RoleStudent, teacherID))
	if err != nil {
		return nil, fmt.Errorf("list mentee ids: %w", err)
	}
	return ids, nil
}

// ListIDsByClassAdvisor получает ID студентов группы куратора
func (r *StudentRepository) ListIDsByClassAdvisor(ctx context.Context, teacherID string) ([]string, error) {
	query := `
		SELECT id
		FROM users
		WHERE role = $1 AND class_advisor_id = $2
		ORDER BY id
	`

	ids, err := base.CollectStrings(r.Pool().Query(ctx, query, model.RoleStudent, teacherID))
	if err != nil {
		return nil, fmt.Errorf("list class student ids: %w", err)
	}
	return ids, nil
}
