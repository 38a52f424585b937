// Package directory держит в памяти индекс OD-заявок поверх долговременного хранилища.
//
// Запись всегда идёт сначала в хранилище и только после подтверждения в память,
// чтение обслуживается из памяти. В памяти хранятся только последние заявки
// каждого семестра студента, полная история есть только в хранилище.
package directory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/Freeeeeet/od_index/internal/window"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State состояние жизненного цикла индекса
type State int32

const (
	StateUninitialized State = iota
	StateBootstrapping
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBootstrapping:
		return "bootstrapping"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

const defaultLoadConcurrency = 8

// Config параметры индекса
type Config struct {
	// WindowCapacity сколько последних заявок семестра держать в памяти
	WindowCapacity int
	// BootstrapTimeout ограничение на весь Bootstrap, 0 - без ограничения
	BootstrapTimeout time.Duration
	// LoadConcurrency сколько историй студентов грузить параллельно
	LoadConcurrency int
}

// Stats счётчики для диагностики
type Stats struct {
	State          State
	Owners         int
	Holders        int
	Degraded       int
	CachedRequests int
	StaleWrites    int64
}

// Directory индекс студентов, учителей и их заявок.
// Создаётся явно и передаётся зависимостям, глобального экземпляра нет.
type Directory struct {
	store  Store
	cfg    Config
	logger *zap.Logger

	mu      sync.RWMutex
	state   State
	owners  map[string]*OwnerNode        // ID студента -> узел
	holders map[string]*RelationshipNode // ID учителя -> узел
	admin   *model.Admin

	requestLocks *keyedMutex
	staleWrites  atomic.Int64
	now          func() time.Time
}

// New создаёт индекс в состоянии StateUninitialized
func New(store Store, cfg Config, logger *zap.Logger) *Directory {
	if cfg.WindowCapacity <= 0 {
		cfg.WindowCapacity = window.DefaultCapacity
	}
	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = defaultLoadConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Directory{
		store:        store,
		cfg:          cfg,
		logger:       logger,
		owners:       make(map[string]*OwnerNode),
		holders:      make(map[string]*RelationshipNode),
		requestLocks: newKeyedMutex(),
		now:          time.Now,
	}
}

// State текущее состояние
func (d *Directory) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// ============ Bootstrap ============

// Bootstrap загружает всех студентов с историей заявок, всех учителей со связями
// и административную запись. Ошибка истории одного студента не прерывает загрузку,
// студент помечается как degraded. Недоступность хранилища или таймаут возвращают
// индекс в StateUninitialized.
func (d *Directory) Bootstrap(ctx context.Context) error {
	d.mu.Lock()
	if d.state != StateUninitialized {
		state := d.state
		d.mu.Unlock()
		return fmt.Errorf("%w: state %s", ErrAlreadyBootstrapped, state)
	}
	d.state = StateBootstrapping
	d.mu.Unlock()

	if d.cfg.BootstrapTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.BootstrapTimeout)
		defer cancel()
	}

	started := d.now()
	d.logger.Info("Bootstrapping OD request directory",
		zap.Int("window_capacity", d.cfg.WindowCapacity),
		zap.Duration("timeout", d.cfg.BootstrapTimeout),
	)

	owners, holders, admin, err := d.load(ctx)
	if err != nil {
		d.mu.Lock()
		d.state = StateUninitialized
		d.mu.Unlock()

		d.logger.Error("Bootstrap failed", zap.Error(err))
		return err
	}

	d.mu.Lock()
	d.owners = owners
	d.holders = holders
	d.admin = admin
	d.state = StateReady
	d.mu.Unlock()

	d.logger.Info("✅ Directory ready",
		zap.Int("owners", len(owners)),
		zap.Int("holders", len(holders)),
		zap.Int("degraded", len(d.Degraded())),
		zap.Duration("took", d.now().Sub(started)),
	)

	return nil
}

func (d *Directory) load(ctx context.Context) (map[string]*OwnerNode, map[string]*RelationshipNode, *model.Admin, error) {
	owners, err := d.loadOwners(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	holders, err := d.loadHolders(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	admin, err := d.store.GetAdmin(ctx)
	if err != nil {
		return nil, nil, nil, storeError("get admin", err)
	}

	return owners, holders, admin, nil
}

func (d *Directory) loadOwners(ctx context.Context) (map[string]*OwnerNode, error) {
	students, err := d.store.ListStudents(ctx)
	if err != nil {
		return nil, storeError("list students", err)
	}

	owners := make(map[string]*OwnerNode, len(students))
	for _, s := range students {
		if s == nil {
			continue
		}
		owners[s.ID] = newOwnerNode(*s, d.cfg.WindowCapacity)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.LoadConcurrency)
	for _, node := range owners {
		g.Go(func() error {
			d.loadHistory(gctx, node)
			return nil
		})
	}
	_ = g.Wait()

	// Таймаут превращает все истории в degraded, это отказ хранилища, а не частичная загрузка
	if err := ctx.Err(); err != nil {
		return nil, storeError("load histories", err)
	}

	return owners, nil
}

// loadHistory загружает историю студента в окна по возрастанию времени подачи.
// При ошибке узел остаётся пустым и помечается degraded.
func (d *Directory) loadHistory(ctx context.Context, node *OwnerNode) error {
	studentID := node.Student().ID

	requests, err := d.store.ListRequestsByStudent(ctx, studentID)
	if err != nil {
		node.mu.Lock()
		node.periods = make(map[int]*window.Window[model.ODRequest])
		node.degraded = err
		node.mu.Unlock()

		d.logger.Warn("Failed to load owner history, owner degraded",
			zap.String("student_id", studentID),
			zap.Error(err),
		)
		return &DegradedOwner{StudentID: studentID, Err: err}
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.Before(requests[j].SubmittedAt)
	})

	node.mu.Lock()
	defer node.mu.Unlock()

	node.periods = make(map[int]*window.Window[model.ODRequest])
	node.degraded = nil
	for _, req := range requests {
		node.window(req.Semester).Enqueue(req.Clone())
	}

	return nil
}

func (d *Directory) loadHolders(ctx context.Context) (map[string]*RelationshipNode, error) {
	teachers, err := d.store.ListTeachers(ctx)
	if err != nil {
		return nil, storeError("list teachers", err)
	}

	nodes := make([]*RelationshipNode, len(teachers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.LoadConcurrency)
	for i, teacher := range teachers {
		if teacher == nil {
			continue
		}
		g.Go(func() error {
			node, err := d.buildHolder(gctx, *teacher)
			if err != nil {
				return err
			}
			nodes[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	holders := make(map[string]*RelationshipNode, len(nodes))
	for _, node := range nodes {
		if node != nil {
			holders[node.teacher.ID] = node
		}
	}

	return holders, nil
}

// buildHolder находит подопечных и студентов группы учителя по ссылкам в записях студентов
func (d *Directory) buildHolder(ctx context.Context, teacher model.Teacher) (*RelationshipNode, error) {
	mentees, err := d.store.ListStudentIDsByMentor(ctx, teacher.ID)
	if err != nil {
		return nil, storeError("list mentees of "+teacher.ID, err)
	}

	classStudents, err := d.store.ListStudentIDsByClassAdvisor(ctx, teacher.ID)
	if err != nil {
		return nil, storeError("list class students of "+teacher.ID, err)
	}

	return newRelationshipNode(teacher, mentees, classStudents), nil
}

// ============ Запись ============

// AddRequest сохраняет новую заявку студента и добавляет её в окно семестра.
// Память меняется только после успешной записи в хранилище.
func (d *Directory) AddRequest(ctx context.Context, studentID string, draft *model.ODRequestDraft) (*model.ODRequest, error) {
	if draft == nil {
		return nil, fmt.Errorf("%w: nil draft", ErrInvalidDraft)
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	node, err := d.lookupOwner(studentID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, studentID)
	}

	req := draft.ToRequest(studentID)
	if err := d.store.CreateRequest(ctx, &req); err != nil {
		return nil, storeError("create request", err)
	}

	if req.ID == uuid.Nil || req.StudentID != studentID {
		d.logger.Error("Store returned request that cannot be cached",
			zap.String("student_id", studentID),
			zap.String("request_id", req.ID.String()),
			zap.String("returned_student_id", req.StudentID),
		)
		return nil, fmt.Errorf("%w: create request for %s returned id %s owner %s",
			ErrConsistency, studentID, req.ID, req.StudentID)
	}

	node.Record(req)

	d.logger.Info("OD request created",
		zap.String("student_id", studentID),
		zap.String("request_id", req.ID.String()),
		zap.Int("semester", req.Semester),
	)

	out := req.Clone()
	return &out, nil
}

// UpdateRequest применяет обновление в хранилище и затем заменяет заявку в окне.
// Обновления одной заявки выполняются строго по очереди. Если студента нет в
// индексе или заявка уже вытеснена из окна, обновление остаётся только в
// хранилище, вызывающий получает успех.
func (d *Directory) UpdateRequest(ctx context.Context, id uuid.UUID, update *model.ODRequestUpdate) (*model.ODRequest, error) {
	if update == nil {
		return nil, fmt.Errorf("%w: nil update", ErrInvalidDraft)
	}
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	if err := d.ready(); err != nil {
		return nil, err
	}

	unlock := d.requestLocks.Lock(id)
	defer unlock()

	updated, err := d.store.UpdateRequest(ctx, id, update)
	if err != nil {
		return nil, storeError("update request", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	node, err := d.lookupOwner(updated.StudentID)
	if err != nil {
		return nil, err
	}

	switch {
	case node == nil:
		d.staleWrites.Add(1)
		d.logger.Warn("Updated request of untracked owner, cache stays stale until reload",
			zap.String("student_id", updated.StudentID),
			zap.String("request_id", id.String()),
		)
	case !node.Replace(id, *updated):
		d.logger.Debug("Updated request is outside the recency window",
			zap.String("student_id", updated.StudentID),
			zap.String("request_id", id.String()),
			zap.Int("semester", updated.Semester),
		)
	}

	d.logger.Info("OD request updated",
		zap.String("request_id", id.String()),
		zap.String("status", string(updated.Status)),
	)

	out := updated.Clone()
	return &out, nil
}

// ============ Чтение ============

// OwnerRequests заявки студента по всем семестрам из памяти.
// Неизвестный студент - пустой срез.
func (d *Directory) OwnerRequests(studentID string) ([]model.ODRequest, error) {
	node, err := d.lookupOwner(studentID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return []model.ODRequest{}, nil
	}
	return node.Requests(), nil
}

// OwnerPeriodRequests заявки студента за семестр от старой к новой
func (d *Directory) OwnerPeriodRequests(studentID string, semester int) ([]model.ODRequest, error) {
	node, err := d.lookupOwner(studentID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return []model.ODRequest{}, nil
	}
	return node.PeriodRequests(semester), nil
}

// RelationshipRequests заявки подопечных или студентов группы учителя.
// Неизвестный учитель - пустой срез.
func (d *Directory) RelationshipRequests(teacherID string, kind RelationKind) ([]model.ODRequest, error) {
	d.mu.RLock()
	if d.state != StateReady {
		d.mu.RUnlock()
		return nil, ErrNotReady
	}
	holder := d.holders[teacherID]
	d.mu.RUnlock()

	if holder == nil {
		return []model.ODRequest{}, nil
	}

	return holder.requestsFor(kind, d.ownerUnchecked), nil
}

// Owner узел студента, nil если студента нет
func (d *Directory) Owner(studentID string) (*OwnerNode, error) {
	return d.lookupOwner(studentID)
}

// Holder узел учителя, nil если учителя нет
func (d *Directory) Holder(teacherID string) (*RelationshipNode, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.holders[teacherID], nil
}

// HolderIDs отсортированные ID учителей в индексе
func (d *Directory) HolderIDs() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.state != StateReady {
		return nil, ErrNotReady
	}

	ids := make([]string, 0, len(d.holders))
	for id := range d.holders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Admin административная запись, nil если её нет в хранилище
func (d *Directory) Admin() (*model.Admin, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.state != StateReady {
		return nil, ErrNotReady
	}
	if d.admin == nil {
		return nil, nil
	}
	admin := *d.admin
	return &admin, nil
}

// ============ Перезагрузка ============

// ReloadHolder пересобирает связи одного учителя из хранилища.
// Учитель, которого ещё не было в индексе, добавляется.
func (d *Directory) ReloadHolder(ctx context.Context, teacherID string) error {
	if err := d.ready(); err != nil {
		return err
	}

	teacher, err := d.store.GetTeacher(ctx, teacherID)
	if err != nil {
		return storeError("get teacher", err)
	}
	if teacher == nil {
		return fmt.Errorf("%w: %s", ErrHolderNotFound, teacherID)
	}

	node, err := d.buildHolder(ctx, *teacher)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.holders[teacherID] = node
	d.mu.Unlock()

	d.logger.Info("Holder reloaded",
		zap.String("teacher_id", teacherID),
		zap.Int("mentees", len(node.mentees)),
		zap.Int("class_students", len(node.classStudents)),
	)
	return nil
}

// ReloadHolders пересобирает связи всех учителей; удалённые из хранилища учителя пропадают
func (d *Directory) ReloadHolders(ctx context.Context) error {
	if err := d.ready(); err != nil {
		return err
	}

	holders, err := d.loadHolders(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.holders = holders
	d.mu.Unlock()

	d.logger.Info("Holders reloaded", zap.Int("holders", len(holders)))
	return nil
}

// ReloadOwner перечитывает студента и его историю из хранилища. Это явный путь
// восстановления для degraded студентов и для студентов, созданных после Bootstrap.
// Заявки, записанные параллельно с перезагрузкой, могут не попасть в окно до
// следующей перезагрузки. Если история снова не загрузилась, возвращается *DegradedOwner.
func (d *Directory) ReloadOwner(ctx context.Context, studentID string) error {
	if err := d.ready(); err != nil {
		return err
	}

	student, err := d.store.GetStudent(ctx, studentID)
	if err != nil {
		return storeError("get student", err)
	}
	if student == nil {
		return fmt.Errorf("%w: %s", ErrOwnerNotFound, studentID)
	}

	d.mu.Lock()
	node, ok := d.owners[studentID]
	if !ok {
		node = newOwnerNode(*student, d.cfg.WindowCapacity)
		d.owners[studentID] = node
	}
	d.mu.Unlock()

	if ok {
		node.mu.Lock()
		node.student = *student
		node.mu.Unlock()
	}

	if err := d.loadHistory(ctx, node); err != nil {
		return err
	}

	d.logger.Info("Owner reloaded",
		zap.String("student_id", studentID),
		zap.Int("cached_requests", node.Len()),
	)
	return nil
}

// ============ Диагностика ============

// Degraded студенты, чья история не загрузилась, отсортированные по ID
func (d *Directory) Degraded() []DegradedOwner {
	d.mu.RLock()
	nodes := make([]*OwnerNode, 0, len(d.owners))
	for _, node := range d.owners {
		nodes = append(nodes, node)
	}
	d.mu.RUnlock()

	var degraded []DegradedOwner
	for _, node := range nodes {
		if err := node.Degraded(); err != nil {
			degraded = append(degraded, DegradedOwner{StudentID: node.Student().ID, Err: err})
		}
	}
	sort.Slice(degraded, func(i, j int) bool {
		return degraded[i].StudentID < degraded[j].StudentID
	})
	return degraded
}

// Stats текущие счётчики индекса
func (d *Directory) Stats() Stats {
	d.mu.RLock()
	stats := Stats{
		State:   d.state,
		Owners:  len(d.owners),
		Holders: len(d.holders),
	}
	nodes := make([]*OwnerNode, 0, len(d.owners))
	for _, node := range d.owners {
		nodes = append(nodes, node)
	}
	d.mu.RUnlock()

	for _, node := range nodes {
		if node.Degraded() != nil {
			stats.Degraded++
		}
		stats.CachedRequests += node.Len()
	}
	stats.StaleWrites = d.staleWrites.Load()

	return stats
}

// ============ Вспомогательные ============

func (d *Directory) ready() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.state != StateReady {
		return ErrNotReady
	}
	return nil
}

func (d *Directory) lookupOwner(studentID string) (*OwnerNode, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.state != StateReady {
		return nil, ErrNotReady
	}
	return d.owners[studentID], nil
}

func (d *Directory) ownerUnchecked(studentID string) *OwnerNode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.owners[studentID]
}
