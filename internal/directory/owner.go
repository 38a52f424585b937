package directory

import (
	"sort"
	"sync"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/Freeeeeet/od_index/internal/window"
	"github.com/google/uuid"
)

// OwnerNode студент и его заявки, разложенные по семестрам.
// Окно семестра создаётся при первой заявке за этот семестр.
type OwnerNode struct {
	mu       sync.RWMutex
	student  model.Student
	capacity int
	periods  map[int]*window.Window[model.ODRequest] // семестр -> последние заявки
	degraded error
}

func newOwnerNode(student model.Student, capacity int) *OwnerNode {
	return &OwnerNode{
		student:  student,
		capacity: capacity,
		periods:  make(map[int]*window.Window[model.ODRequest]),
	}
}

// Student возвращает копию атрибутов студента
func (n *OwnerNode) Student() model.Student {
	n.mu.RLock()
	defer n.mu.RUnlock()

	s := n.student
	s.PriorSemesters = append([]int(nil), n.student.PriorSemesters...)
	return s
}

// Periods семестры студента: прошлые и текущий
func (n *OwnerNode) Periods() []int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.student.Semesters()
}

// Degraded ошибка загрузки истории, nil если история загружена
func (n *OwnerNode) Degraded() error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.degraded
}

// window возвращает окно семестра, создавая пустое при первом обращении.
// Вызывается под n.mu.
func (n *OwnerNode) window(period int) *window.Window[model.ODRequest] {
	w, ok := n.periods[period]
	if !ok {
		w = window.New[model.ODRequest](n.capacity)
		n.periods[period] = w
	}
	return w
}

// Record кладёт заявку в окно её семестра
func (n *OwnerNode) Record(req model.ODRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.window(req.Semester).Enqueue(req.Clone())
}

// Replace заменяет заявку с указанным ID в окне семестра updated.Semester.
// Окно пересобирается целиком, порядок остальных заявок сохраняется.
// Возвращает false, если заявки в окне нет; окно при этом не меняется.
func (n *OwnerNode) Replace(id uuid.UUID, updated model.ODRequest) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	w, ok := n.periods[updated.Semester]
	if !ok {
		return false
	}

	items := w.Items()
	for i := range items {
		if items[i].ID == id {
			items[i] = updated.Clone()
			w.Reset(items)
			return true
		}
	}
	return false
}

// PeriodRequests заявки семестра от старой к новой; неизвестный семестр - пустой срез
func (n *OwnerNode) PeriodRequests(period int) []model.ODRequest {
	n.mu.RLock()
	defer n.mu.RUnlock()

	w, ok := n.periods[period]
	if !ok {
		return []model.ODRequest{}
	}
	return cloneAll(w.Items())
}

// Requests заявки всех семестров. Внутри семестра порядок от старой к новой,
// семестры идут по возрастанию номера; глобальной сортировки по времени нет.
func (n *OwnerNode) Requests() []model.ODRequest {
	n.mu.RLock()
	defer n.mu.RUnlock()

	periods := make([]int, 0, len(n.periods))
	for p := range n.periods {
		periods = append(periods, p)
	}
	sort.Ints(periods)

	var requests []model.ODRequest
	for _, p := range periods {
		requests = append(requests, cloneAll(n.periods[p].Items())...)
	}
	if requests == nil {
		return []model.ODRequest{}
	}
	return requests
}

// Len суммарное число заявок во всех окнах
func (n *OwnerNode) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	total := 0
	for _, w := range n.periods {
		total += w.Len()
	}
	return total
}

func cloneAll(items []model.ODRequest) []model.ODRequest {
	for i := range items {
		items[i] = items[i].Clone()
	}
	return items
}
