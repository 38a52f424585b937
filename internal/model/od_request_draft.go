package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ODRequestDraft данные новой заявки, пришедшие от внешнего слоя
type ODRequestDraft struct {
	Semester     int       `json:"semester" validate:"required,min=1,max=12"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	StartSession Session   `json:"start_session" validate:"required,oneof=forenoon afternoon fullday"`
	EndSession   Session   `json:"end_session" validate:"required,oneof=forenoon afternoon fullday"`
	Description  string    `json:"description" validate:"required,max=2000"`
	// Approvals имена согласований; пусто - DefaultApprovals
	Approvals []string `json:"approvals,omitempty" validate:"omitempty,unique,dive,required,max=64"`
}

// Validate проверяет черновик
func (d *ODRequestDraft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("validate draft: %w", err)
	}
	return nil
}

// ToRequest собирает заявку в статусе Pending. ID и SubmittedAt назначает хранилище.
func (d *ODRequestDraft) ToRequest(studentID string) ODRequest {
	names := d.Approvals
	if len(names) == 0 {
		names = DefaultApprovals
	}

	approvals := make([]Approval, 0, len(names))
	for _, name := range names {
		approvals = append(approvals, Approval{Name: name, Status: RequestStatusPending})
	}

	return ODRequest{
		StudentID:    studentID,
		Semester:     d.Semester,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		StartSession: d.StartSession,
		EndSession:   d.EndSession,
		Description:  d.Description,
		Status:       RequestStatusPending,
		Approvals:    approvals,
	}
}

// ApprovalDecision изменение одного согласования
type ApprovalDecision struct {
	Name      string        `json:"name" validate:"required,max=64"`
	Status    RequestStatus `json:"status" validate:"required,oneof=Pending Approved Rejected"`
	Remark    *string       `json:"remark,omitempty" validate:"omitempty,max=1000"`
	DecidedAt *time.Time    `json:"decided_at,omitempty"`
}

// ODRequestUpdate частичное обновление заявки; nil-поля не меняются
type ODRequestUpdate struct {
	Status       *RequestStatus     `json:"status,omitempty" validate:"omitempty,oneof=Pending Approved Rejected"`
	Description  *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate    *time.Time         `json:"start_date,omitempty"`
	EndDate      *time.Time         `json:"end_date,omitempty"`
	StartSession *Session           `json:"start_session,omitempty" validate:"omitempty,oneof=forenoon afternoon fullday"`
	EndSession   *Session           `json:"end_session,omitempty" validate:"omitempty,oneof=forenoon afternoon fullday"`
	Approvals    []ApprovalDecision `json:"approvals,omitempty" validate:"omitempty,dive"`
	// DeriveStatus пересчитать статус заявки по согласованиям после их применения
	DeriveStatus bool `json:"derive_status,omitempty"`
}

// ErrEmptyUpdate обновление без единого поля
var ErrEmptyUpdate = errors.New("update has no fields")

// IsEmpty проверяет, что обновление ничего не меняет
func (u *ODRequestUpdate) IsEmpty() bool {
	return u.Status == nil &&
		u.Description == nil &&
		u.StartDate == nil &&
		u.EndDate == nil &&
		u.StartSession == nil &&
		u.EndSession == nil &&
		len(u.Approvals) == 0 &&
		!u.DeriveStatus
}

// Validate проверяет обновление
func (u *ODRequestUpdate) Validate() error {
	if u.IsEmpty() {
		return ErrEmptyUpdate
	}
	if u.Status != nil && u.DeriveStatus {
		return fmt.Errorf("validate update: status and derive_status are mutually exclusive")
	}
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("validate update: %w", err)
	}
	if u.StartDate != nil && u.EndDate != nil && u.EndDate.Before(*u.StartDate) {
		return fmt.Errorf("validate update: end date %s before start date %s",
			u.EndDate.Format(time.DateOnly), u.StartDate.Format(time.DateOnly))
	}
	return nil
}

// Apply применяет обновление к заявке. Согласования обновляются по имени,
// неизвестные имена добавляются в конец. Решение без времени получает now.
func (u *ODRequestUpdate) Apply(req *ODRequest, now time.Time) {
	if u.Status != nil {
		req.Status = *u.Status
	}
	if u.Description != nil {
		req.Description = *u.Description
	}
	if u.StartDate != nil {
		req.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		req.EndDate = *u.EndDate
	}
	if u.StartSession != nil {
		req.StartSession = *u.StartSession
	}
	if u.EndSession != nil {
		req.EndSession = *u.EndSession
	}

	for _, d := range u.Approvals {
		decidedAt := d.DecidedAt
		if decidedAt == nil && d.Status != RequestStatusPending {
			t := now
			decidedAt = &t
		}

		approval := Approval{Name: d.Name, Status: d.Status, Remark: d.Remark, DecidedAt: decidedAt}
		if existing, ok := req.Approval(d.Name); ok {
			*existing = approval
			continue
		}
		req.Approvals = append(req.Approvals, approval)
	}

	if u.DeriveStatus {
		req.Status = req.DerivedStatus()
	}
}
