package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/Freeeeeet/od_index/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

// List получает всех учителей
func (r *TeacherRepository) List(ctx context.Context) ([]*model.Teacher, error) {
	query := `
		SELECT id, name, email, role
		FROM users
		WHERE role = $1
		ORDER BY id
	`

	rows, err := r.Pool().Query(ctx, query, model.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Role); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teachers: %w", err)
	}

	return teachers, nil
}

// GetByID получает учителя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	query := `
		SELECT id, name, email, role
		FROM users
		WHERE id = $1 AND role = $2
	`

	var t model.Teacher
	err := r.Pool().QueryRow(ctx, query, id, model.RoleTeacher).Scan(&t.ID, &t.Name, &t.Email, &t.Role)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return &t, nil
}

// GetAdmin получает административную запись; если их несколько, берётся первая по ID
func (r *TeacherRepository) GetAdmin(ctx context.Context) (*model.Admin, error) {
	query := `
		SELECT id, name, email, role
		FROM users
		WHERE role = $1
		ORDER BY id
		LIMIT 1
	`

	var a model.Admin
	err := r.Pool().QueryRow(ctx, query, model.RoleAdmin).Scan(&a.ID, &a.Name, &a.Email, &a.Role)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}

	return &a, nil
}
