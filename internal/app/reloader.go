package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// HolderReloader перечитывает связи учителей; реализуется directory.Directory
type HolderReloader interface {
	ReloadHolders(ctx context.Context) error
}

// Reloader периодически пересобирает связи учителей со студентами.
// Связи меняются во внешней системе, индекс подхватывает их только при перезагрузке.
type Reloader struct {
	directory HolderReloader
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	done      chan struct{}
}

// NewReloader создаёт новый планировщик перезагрузки
func NewReloader(directory HolderReloader, interval time.Duration, logger *zap.Logger) *Reloader {
	return &Reloader{
		directory: directory,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start запускает фоновую задачу; при interval <= 0 ничего не делает
func (r *Reloader) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("Holder reload disabled")
		close(r.done)
		return
	}

	r.logger.Info("Starting holder reloader", zap.Duration("interval", r.interval))
	go r.run(ctx)
}

// Stop останавливает фоновую задачу и ждёт её завершения
func (r *Reloader) Stop() {
	r.logger.Info("Stopping holder reloader")
	select {
	case <-r.stopChan:
	default:
		close(r.stopChan)
	}
	<-r.done
}

func (r *Reloader) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.reload(ctx)
		case <-r.stopChan:
			r.logger.Info("Holder reloader stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Holder reloader cancelled")
			return
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	if err := r.directory.ReloadHolders(ctx); err != nil {
		r.logger.Error("Failed to reload holders", zap.Error(err))
		return
	}
	r.logger.Debug("Holders reloaded")
}
