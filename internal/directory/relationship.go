package directory

import (
	"fmt"
	"sort"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/google/uuid"
)

// RelationKind вид связи учителя со студентом
type RelationKind string

const (
	RelationMentee       RelationKind = "mentee"
	RelationClassStudent RelationKind = "class_student"
)

// ParseRelationKind разбирает вид связи
func ParseRelationKind(s string) (RelationKind, error) {
	switch RelationKind(s) {
	case RelationMentee, RelationClassStudent:
		return RelationKind(s), nil
	}
	return "", fmt.Errorf("unknown relation kind %q", s)
}

// RelationshipNode учитель и множества связанных с ним студентов.
// Узел только для поиска, заявками не владеет. После сборки не меняется,
// изменения связей подхватываются через ReloadHolder.
type RelationshipNode struct {
	teacher       model.Teacher
	mentees       map[string]struct{}
	classStudents map[string]struct{}
}

func newRelationshipNode(teacher model.Teacher, mentees, classStudents []string) *RelationshipNode {
	return &RelationshipNode{
		teacher:       teacher,
		mentees:       toSet(mentees),
		classStudents: toSet(classStudents),
	}
}

// Teacher атрибуты учителя
func (n *RelationshipNode) Teacher() model.Teacher {
	return n.teacher
}

// StudentIDs отсортированные ID студентов указанного вида связи
func (n *RelationshipNode) StudentIDs(kind RelationKind) []string {
	set := n.set(kind)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (n *RelationshipNode) set(kind RelationKind) map[string]struct{} {
	switch kind {
	case RelationMentee:
		return n.mentees
	case RelationClassStudent:
		return n.classStudents
	}
	return nil
}

// requestsFor объединяет заявки всех студентов связи без повторов по ID заявки.
// lookup возвращает nil для студента, которого нет в индексе.
func (n *RelationshipNode) requestsFor(kind RelationKind, lookup func(id string) *OwnerNode) []model.ODRequest {
	seen := make(map[uuid.UUID]struct{})
	requests := []model.ODRequest{}

	for _, id := range n.StudentIDs(kind) {
		owner := lookup(id)
		if owner == nil {
			continue
		}
		for _, req := range owner.Requests() {
			if _, ok := seen[req.ID]; ok {
				continue
			}
			seen[req.ID] = struct{}{}
			requests = append(requests, req)
		}
	}

	return requests
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
