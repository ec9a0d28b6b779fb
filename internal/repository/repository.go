package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Person  PersonRepository
	Role    RoleRepository
	Class   ClassRepository
	Course  CourseRepository
	Contact ContactRepository
	Holiday HolidayRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Person:  NewPersonRepo(db),
		Role:    NewRoleRepo(db),
		Class:   NewClassRepo(db),
		Course:  NewCourseRepo(db),
		Contact: NewContactRepo(db),
		Holiday: NewHolidayRepo(db),
	}
}
