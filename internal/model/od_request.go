package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus статус OD-заявки или отдельного согласования
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"  // Ожидает решения
	RequestStatusApproved RequestStatus = "Approved" // Одобрено
	RequestStatusRejected RequestStatus = "Rejected" // Отклонено
)

// IsValid проверяет, что статус из допустимого набора
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// Session половина учебного дня, с которой начинается или которой заканчивается заявка
type Session string

const (
	SessionForenoon  Session = "forenoon"
	SessionAfternoon Session = "afternoon"
	SessionFullDay   Session = "fullday"
)

// IsValid проверяет, что значение из допустимого набора
func (s Session) IsValid() bool {
	switch s {
	case SessionForenoon, SessionAfternoon, SessionFullDay:
		return true
	}
	return false
}

// Имена согласований, которые создаются для новой заявки
const (
	ApprovalMentor       = "mentor"
	ApprovalClassAdvisor = "class_advisor"
	ApprovalHOD          = "hod"
)

// DefaultApprovals порядок согласований новой заявки
var DefaultApprovals = []string{ApprovalMentor, ApprovalClassAdvisor, ApprovalHOD}

// Approval именованное согласование внутри заявки
type Approval struct {
	Name      string        `json:"name"`
	Status    RequestStatus `json:"status"`
	Remark    *string       `json:"remark,omitempty"`
	DecidedAt *time.Time    `json:"decided_at,omitempty"`
}

// ODRequest заявка студента на OD (on duty) за конкретный семестр
type ODRequest struct {
	ID           uuid.UUID     `json:"id"`
	StudentID    string        `json:"student_id"`
	Semester     int           `json:"semester"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	StartSession Session       `json:"start_session"`
	EndSession   Session       `json:"end_session"`
	Description  string        `json:"description"`
	Status       RequestStatus `json:"status"`
	Approvals    []Approval    `json:"approvals"`
	SubmittedAt  time.Time     `json:"submitted_at"`
}

// Clone возвращает глубокую копию заявки
func (r ODRequest) Clone() ODRequest {
	if r.Approvals == nil {
		return r
	}

	approvals := make([]Approval, len(r.Approvals))
	for i, a := range r.Approvals {
		if a.Remark != nil {
			remark := *a.Remark
			a.Remark = &remark
		}
		if a.DecidedAt != nil {
			decidedAt := *a.DecidedAt
			a.DecidedAt = &decidedAt
		}
		approvals[i] = a
	}
	r.Approvals = approvals

	return r
}

// Approval возвращает согласование по имени
func (r *ODRequest) Approval(name string) (*Approval, bool) {
	for i := range r.Approvals {
		if r.Approvals[i].Name == name {
			return &r.Approvals[i], true
		}
	}
	return nil, false
}

// DerivedStatus статус заявки по согласованиям: любое отклонение - Rejected,
// все одобрены - Approved, иначе Pending. Заявка без согласований остаётся Pending.
func (r *ODRequest) DerivedStatus() RequestStatus {
	if len(r.Approvals) == 0 {
		return RequestStatusPending
	}

	approved := 0
	for _, a := range r.Approvals {
		switch a.Status {
		case RequestStatusRejected:
			return RequestStatusRejected
		case RequestStatusApproved:
			approved++
		}
	}

	if approved == len(r.Approvals) {
		return RequestStatusApproved
	}
	return RequestStatusPending
}

// IsPending checks if request is pending
func (r *ODRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsApproved checks if request is approved
func (r *ODRequest) IsApproved() bool {
	return r.Status == RequestStatusApproved
}

// IsRejected checks if request is rejected
func (r *ODRequest) IsRejected() bool {
	return r.Status == RequestStatusRejected
}
