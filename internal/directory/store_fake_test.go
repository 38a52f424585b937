package directory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/od_index/internal/model"
	"github.com/google/uuid"
)

// fakeStore хранилище в памяти для тестов индекса
type fakeStore struct {
	mu       sync.Mutex
	students map[string]*model.Student
	teachers map[string]*model.Teacher
	admin    *model.Admin
	requests map[uuid.UUID]*model.ODRequest
	clock    time.Time

	listStudentsErr error
	listTeachersErr error
	createErr       error
	updateErr       error
	historyErr      map[string]error
	blockStudents   bool // ListStudents ждёт отмены контекста
	updates         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students:   make(map[string]*model.Student),
		teachers:   make(map[string]*model.Teacher),
		requests:   make(map[uuid.UUID]*model.ODRequest),
		historyErr: make(map[string]error),
		clock:      time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) addStudent(id string, current int, prior []int, mentor, advisor string) {
	student := &model.Student{
		ID:              id,
		Name:            "Student " + id,
		Email:           id + "@college.test",
		Role:            model.RoleStudent,
		CurrentSemester: current,
		PriorSemesters:  prior,
	}
	if mentor != "" {
		student.MentorID = &mentor
	}
	if advisor != "" {
		student.ClassAdvisorID = &advisor
	}
	s.students[id] = student
}

func (s *fakeStore) addTeacher(id string) {
	s.teachers[id] = &model.Teacher{ID: id, Name: "Teacher " + id, Email: id + "@college.test", Role: model.RoleTeacher}
}

func (s *fakeStore) seedRequest(studentID string, semester int, submittedAt time.Time) model.ODRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := model.ODRequest{
		ID:           uuid.New(),
		StudentID:    studentID,
		Semester:     semester,
		StartDate:    submittedAt.Add(24 * time.Hour),
		EndDate:      submittedAt.Add(48 * time.Hour),
		StartSession: model.SessionFullDay,
		EndSession:   model.SessionFullDay,
		Description:  "symposium",
		Status:       model.RequestStatusPending,
		SubmittedAt:  submittedAt,
	}
	stored := req.Clone()
	s.requests[req.ID] = &stored
	return req
}

func (s *fakeStore) request(id uuid.UUID) (model.ODRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return model.ODRequest{}, false
	}
	return req.Clone(), true
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *fakeStore) ListStudents(ctx context.Context) ([]*model.Student, error) {
	if s.blockStudents {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listStudentsErr != nil {
		return nil, s.listStudentsErr
	}

	students := make([]*model.Student, 0, len(s.students))
	for _, st := range s.students {
		cp := *st
		students = append(students, &cp)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (s *fakeStore) GetStudent(_ context.Context, id string) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *fakeStore) ListStudentIDsByMentor(_ context.Context, teacherID string) ([]string, error) {
	return s.studentIDs(func(st *model.Student) *string { return st.MentorID }, teacherID), nil
}

func (s *fakeStore) ListStudentIDsByClassAdvisor(_ context.Context, teacherID string) ([]string, error) {
	return s.studentIDs(func(st *model.Student) *string { return st.ClassAdvisorID }, teacherID), nil
}

func (s *fakeStore) studentIDs(ref func(*model.Student) *string, teacherID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for id, st := range s.students {
		if r := ref(st); r != nil && *r == teacherID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *fakeStore) ListTeachers(_ context.Context) ([]*model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listTeachersErr != nil {
		return nil, s.listTeachersErr
	}

	teachers := make([]*model.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		cp := *t
		teachers = append(teachers, &cp)
	}
	return teachers, nil
}

func (s *fakeStore) GetTeacher(_ context.Context, id string) (*model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teachers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *fakeStore) GetAdmin(_ context.Context) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		return nil, nil
	}
	cp := *s.admin
	return &cp, nil
}

func (s *fakeStore) ListRequestsByStudent(_ context.Context, studentID string) ([]*model.ODRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.historyErr[studentID]; err != nil {
		return nil, err
	}

	// порядок map случайный, индекс сам сортирует по SubmittedAt
	var requests []*model.ODRequest
	for _, req := range s.requests {
		if req.StudentID == studentID {
			cp := req.Clone()
			requests = append(requests, &cp)
		}
	}
	return requests, nil
}

func (s *fakeStore) CreateRequest(_ context.Context, req *model.ODRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}

	s.clock = s.clock.Add(time.Minute)
	req.ID = uuid.New()
	req.SubmittedAt = s.clock

	stored := req.Clone()
	s.requests[req.ID] = &stored
	return nil
}

func (s *fakeStore) UpdateRequest(_ context.Context, id uuid.UUID, update *model.ODRequestUpdate) (*model.ODRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}

	req, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	s.updates++
	update.Apply(req, s.clock)

	out := req.Clone()
	return &out, nil
}
