package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestWriter операции записи индекса; реализуется directory.Directory
type RequestWriter interface {
	AddRequest(ctx context.Context, studentID string, draft *model.ODRequestDraft) (*model.ODRequest, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, update *model.ODRequestUpdate) (*model.ODRequest, error)
}

// ODService сценарии подачи и согласования OD-заявок поверх индекса
type ODService struct {
	writer RequestWriter
	logger *zap.Logger
}

func NewODService(writer RequestWriter, logger *zap.Logger) *ODService {
	return &ODService{
		writer: writer,
		logger: logger,
	}
}

// Submit подаёт новую заявку студента
func (s *ODService) Submit(ctx context.Context, studentID string, draft *model.ODRequestDraft) (*model.ODRequest, error) {
	req, err := s.writer.AddRequest(ctx, studentID, draft)
	if err != nil {
		return nil, fmt.Errorf("submit od request: %w", err)
	}
	return req, nil
}

// Decide записывает решение одного согласующего и пересчитывает статус заявки
// в той же записи: любое отклонение отклоняет заявку, одобрение всех - одобряет.
func (s *ODService) Decide(ctx context.Context, requestID uuid.UUID, approval string, status model.RequestStatus, remark string) (*model.ODRequest, error) {
	decision := model.ApprovalDecision{Name: approval, Status: status}
	if remark != "" {
		decision.Remark = &remark
	}

	req, err := s.writer.UpdateRequest(ctx, requestID, &model.ODRequestUpdate{
		Approvals:    []model.ApprovalDecision{decision},
		DeriveStatus: true,
	})
	if err != nil {
		return nil, fmt.Errorf("decide od request: %w", err)
	}

	s.logger.Info("OD request decision recorded",
		zap.String("request_id", requestID.String()),
		zap.String("approval", approval),
		zap.String("decision", string(status)),
		zap.String("status", string(req.Status)),
	)

	return req, nil
}

// Approve одобрение от имени согласующего
func (s *ODService) Approve(ctx context.Context, requestID uuid.UUID, approval, remark string) (*model.ODRequest, error) {
	return s.Decide(ctx, requestID, approval, model.RequestStatusApproved, remark)
}

// Reject отклонение от имени согласующего
func (s *ODService) Reject(ctx context.Context, requestID uuid.UUID, approval, remark string) (*model.ODRequest, error) {
	return s.Decide(ctx, requestID, approval, model.RequestStatusRejected, remark)
}

// Revise меняет описание и даты заявки, пока по ней нет решения
func (s *ODService) Revise(ctx context.Context, requestID uuid.UUID, update *model.ODRequestUpdate) (*model.ODRequest, error) {
	if update == nil {
		return nil, fmt.Errorf("revise od request: nil update")
	}
	if update.Status != nil || len(update.Approvals) > 0 || update.DeriveStatus {
		return nil, fmt.Errorf("revise od request: status and approvals change only through decisions")
	}

	req, err := s.writer.UpdateRequest(ctx, requestID, update)
	if err != nil {
		return nil, fmt.Errorf("revise od request: %w", err)
	}
	return req, nil
}
