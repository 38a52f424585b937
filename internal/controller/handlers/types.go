package handlers

import (
	"github.com/Freeeeeet/od_index/internal/directory"
	"github.com/Freeeeeet/od_index/internal/model"
	"go.uber.org/zap"
)

// Directory операции чтения индекса, которые нужны боту
type Directory interface {
	OwnerRequests(studentID string) ([]model.ODRequest, error)
	OwnerPeriodRequests(studentID string, semester int) ([]model.ODRequest, error)
	RelationshipRequests(teacherID string, kind directory.RelationKind) ([]model.ODRequest, error)
	Stats() directory.Stats
}

// MaxListedRequests сколько последних заявок показывать в одном сообщении
const MaxListedRequests = 10

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	directory Directory
	logger    *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(dir Directory, logger *zap.Logger) *Handlers {
	return &Handlers{
		directory: dir,
		logger:    logger,
	}
}
