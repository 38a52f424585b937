package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/Freeeeeet/od_index/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestColumns = `id, student_id, semester, start_date, end_date, start_session, end_session, description, status, approvals, submitted_at`

type ODRequestRepository struct {
	*base.Repository
}

func NewODRequestRepository(pool *pgxpool.Pool) *ODRequestRepository {
	return &ODRequestRepository{Repository: base.NewRepository(pool)}
}

func scanRequest(row pgx.Row) (*model.ODRequest, error) {
	var req model.ODRequest
	err := row.Scan(
		&req.ID,
		&req.StudentID,
		&req.Semester,
		&req.StartDate,
		&req.EndDate,
		&req.StartSession,
		&req.EndSession,
		&req.Description,
		&req.Status,
		&req.Approvals,
		&req.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create создаёт заявку, назначает ей ID и время подачи
func (r *ODRequestRepository) Create(ctx context.Context, req *model.ODRequest) error {
	query := `
		INSERT INTO od_requests (id, student_id, semester, start_date, end_date, start_session, end_session, description, status, approvals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING submitted_at
	`

	id := uuid.New()
	approvals := req.Approvals
	if approvals == nil {
		approvals = []model.Approval{}
	}

	err := r.Pool().QueryRow(
		ctx, query,
		id,
		req.StudentID,
		req.Semester,
		req.StartDate,
		req.EndDate,
		req.StartSession,
		req.EndSession,
		req.Description,
		req.Status,
		approvals,
	).Scan(&req.SubmittedAt)

	if err != nil {
		return fmt.Errorf("create od request: %w", err)
	}

	req.ID = id
	return nil
}

// GetByID получает заявку по ID
func (r *ODRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ODRequest, error) {
	return getRequest(ctx, r.Pool(), id, false)
}

func getRequest(ctx context.Context, db base.DB, id uuid.UUID, forUpdate bool) (*model.ODRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM od_requests
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	req, err := scanRequest(db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get od request: %w", err)
	}

	return req, nil
}

// ListByStudent получает всю историю заявок студента в порядке подачи
func (r *ODRequestRepository) ListByStudent(ctx context.Context, studentID string) ([]*model.ODRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM od_requests
		WHERE student_id = $1
		ORDER BY submitted_at ASC
	`

	rows, err := r.Pool().Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student od requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.ODRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan od request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate od requests: %w", err)
	}

	return requests, nil
}

// Update атомарно применяет обновление: строка блокируется, изменяется и
// возвращается в итоговом виде. Нет заявки - nil, nil.
func (r *ODRequestRepository) Update(ctx context.Context, id uuid.UUID, update *model.ODRequestUpdate) (*model.ODRequest, error) {
	var updated *model.ODRequest

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		req, err := getRequest(ctx, tx, id, true)
		if err != nil || req == nil {
			return err
		}

		now := time.Now()
		update.Apply(req, now)

		query := `
			UPDATE od_requests
			SET start_date = $1, end_date = $2, start_session = $3, end_session = $4,
				description = $5, status = $6, approvals = $7, updated_at = $8
			WHERE id = $9
		`

		_, err = tx.Exec(
			ctx, query,
			req.StartDate,
			req.EndDate,
			req.StartSession,
			req.EndSession,
			req.Description,
			req.Status,
			req.Approvals,
			now,
			id,
		)
		if err != nil {
			return fmt.Errorf("update od request: %w", err)
		}

		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
