package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"school-portal/backend/internal/model"
)

// ── Mock PersonRepository ──

type mockPersonRepo struct {
	persons map[string]*model.Person
	nextID  int
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{persons: make(map[string]*model.Person)}
}

func (m *mockPersonRepo) Create(_ context.Context, person *model.Person) error {
	if person.PersonID == "" {
		person.PersonID = "person-" + person.Email
	}
	m.persons[person.PersonID] = person
	return nil
}

func (m *mockPersonRepo) GetByID(_ context.Context, id string) (*model.Person, error) {
	if p, ok := m.persons[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) GetByEmail(_ context.Context, email string) (*model.Person, error) {
	for _, p := range m.persons {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) GetWithCourses(_ context.Context, id string) (*model.Person, error) {
	if p, ok := m.persons[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) Update(_ context.Context, person *model.Person) error {
	m.persons[person.PersonID] = person
	return nil
}

func (m *mockPersonRepo) Delete(_ context.Context, id string) error {
	delete(m.persons, id)
	return nil
}

func (m *mockPersonRepo) List(_ context.Context, roleName string, offset, limit int) ([]model.Person, int64, error) {
	var result []model.Person
	for _, p := range m.persons {
		if roleName != "" && (p.Role == nil || p.Role.RoleName != roleName) {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockPersonRepo) ListByClass(_ context.Context, classID string) ([]model.Person, error) {
	var result []model.Person
	for _, p := range m.persons {
		if p.ClassID != nil && *p.ClassID == classID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPersonRepo) ClearClass(_ context.Context, personID string, _ string) error {
	if p, ok := m.persons[personID]; ok {
		p.ClassID = nil
	}
	return nil
}

func (m *mockPersonRepo) DetachAllFromClass(_ context.Context, classID string, _ string) error {
	for _, p := range m.persons {
		if p.ClassID != nil && *p.ClassID == classID {
			p.ClassID = nil
		}
	}
	return nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	roles map[string]*model.Roles
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: map[string]*model.Roles{
		model.RoleAdmin:   {RoleID: "role-admin", RoleName: model.RoleAdmin},
		model.RoleStudent: {RoleID: "role-student", RoleName: model.RoleStudent},
		model.RoleUser:    {RoleID: "role-user", RoleName: model.RoleUser},
	}}
}

func (m *mockRoleRepo) GetByName(_ context.Context, roleName string) (*model.Roles, error) {
	if r, ok := m.roles[roleName]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Roles, error) {
	var result []model.Roles
	for _, r := range m.roles {
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Classes
	persons *mockPersonRepo
}

func newMockClassRepo(persons *mockPersonRepo) *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Classes), persons: persons}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Classes) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Name
	}
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Classes, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) GetByName(_ context.Context, name string) (*model.Classes, error) {
	for _, c := range m.classes {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Classes, error) {
	var result []model.Classes
	for _, c := range m.classes {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.Classes) error {
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) DeleteWithDetach(ctx context.Context, id string, deletedBy string) error {
	if err := m.persons.DetachAllFromClass(ctx, id, deletedBy); err != nil {
		return err
	}
	delete(m.classes, id)
	return nil
}

func (m *mockClassRepo) CountStudents(_ context.Context, classID string) (int64, error) {
	var count int64
	for _, p := range m.persons.persons {
		if p.ClassID != nil && *p.ClassID == classID {
			count++
		}
	}
	return count, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Courses
	// pairs 模拟 person_courses 关联表: courseID → personID 集合
	pairs   map[string]map[string]bool
	persons *mockPersonRepo
}

func newMockCourseRepo(persons *mockPersonRepo) *mockCourseRepo {
	return &mockCourseRepo{
		courses: make(map[string]*model.Courses),
		pairs:   make(map[string]map[string]bool),
		persons: persons,
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Courses) error {
	if course.CourseID == "" {
		course.CourseID = "course-" + course.Name
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Courses, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByName(_ context.Context, name string) (*model.Courses, error) {
	for _, c := range m.courses {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetWithPersons(_ context.Context, id string) (*model.Courses, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	copied.Persons = nil
	for personID := range m.pairs[id] {
		if p, ok := m.persons.persons[personID]; ok {
			copied.Persons = append(copied.Persons, *p)
		}
	}
	return &copied, nil
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Courses, error) {
	var result []model.Courses
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	delete(m.pairs, id)
	return nil
}

func (m *mockCourseRepo) Enroll(_ context.Context, person *model.Person, course *model.Courses) error {
	if m.pairs[course.CourseID] == nil {
		m.pairs[course.CourseID] = make(map[string]bool)
	}
	m.pairs[course.CourseID][person.PersonID] = true
	// 与 GORM Association.Append 一致：对象图两侧同时更新
	person.Courses = append(person.Courses, *course)
	course.Persons = append(course.Persons, *person)
	return nil
}

func (m *mockCourseRepo) Unenroll(_ context.Context, person *model.Person, course *model.Courses) error {
	delete(m.pairs[course.CourseID], person.PersonID)
	for i := range person.Courses {
		if person.Courses[i].CourseID == course.CourseID {
			person.Courses = append(person.Courses[:i], person.Courses[i+1:]...)
			break
		}
	}
	for i := range course.Persons {
		if course.Persons[i].PersonID == person.PersonID {
			course.Persons = append(course.Persons[:i], course.Persons[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockCourseRepo) IsEnrolled(_ context.Context, personID, courseID string) (bool, error) {
	return m.pairs[courseID][personID], nil
}

func (m *mockCourseRepo) CountStudents(_ context.Context, courseID string) (int64, error) {
	return int64(len(m.pairs[courseID])), nil
}

// ── Mock ContactRepository ──

type mockContactRepo struct {
	contacts map[string]*model.Contact
	seq      int
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{contacts: make(map[string]*model.Contact)}
}

func (m *mockContactRepo) Create(_ context.Context, contact *model.Contact) error {
	if contact.ContactID == "" {
		m.seq++
		contact.ContactID = fmt.Sprintf("contact-%d", m.seq)
	}
	// 模拟数据库审计默认值
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	if contact.UpdatedAt.IsZero() {
		contact.UpdatedAt = contact.CreatedAt
	}
	m.contacts[contact.ContactID] = contact
	return nil
}

func (m *mockContactRepo) GetByID(_ context.Context, id string) (*model.Contact, error) {
	if c, ok := m.contacts[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContactRepo) Update(_ context.Context, contact *model.Contact) error {
	m.contacts[contact.ContactID] = contact
	return nil
}

func (m *mockContactRepo) Delete(_ context.Context, id string) error {
	delete(m.contacts, id)
	return nil
}

func (m *mockContactRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]model.Contact, int64, error) {
	var result []model.Contact
	for _, c := range m.contacts {
		if c.Status == status {
			result = append(result, *c)
		}
	}
	return result, int64(len(result)), nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		holiday.HolidayID = "holiday-" + holiday.Reason
	}
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) List(_ context.Context) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		result = append(result, *h)
	}
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	delete(m.holidays, id)
	return nil
}
