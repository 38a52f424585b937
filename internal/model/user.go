package model

// Role тег роли пользователя в хранилище
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Student владелец OD-заявок
type Student struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            Role    `json:"role"`
	CurrentSemester int     `json:"current_semester"`
	PriorSemesters  []int   `json:"prior_semesters"`
	MentorID        *string `json:"mentor_id"`        // Ссылка на учителя-наставника
	ClassAdvisorID  *string `json:"class_advisor_id"` // Ссылка на куратора группы
}

// Semesters возвращает все семестры студента: прошлые и текущий, без повторов
func (s *Student) Semesters() []int {
	seen := make(map[int]struct{}, len(s.PriorSemesters)+1)
	semesters := make([]int, 0, len(s.PriorSemesters)+1)
	for _, sem := range append(append([]int{}, s.PriorSemesters...), s.CurrentSemester) {
		if _, ok := seen[sem]; ok {
			continue
		}
		seen[sem] = struct{}{}
		semesters = append(semesters, sem)
	}
	return semesters
}

// Teacher наставник и/или куратор студентов
type Teacher struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Admin единственная административная запись
type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
