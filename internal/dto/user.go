package dto

import "github.com/Arslan-Alizahi/smarttales-backend/internal/model"

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string           `json:"token"`
	Admin *model.AdminUser `json:"admin"`
}

type CreateUserInput struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=30"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required,oneof=Admin Parent Kid Teacher"`

	GradeLevel        string `json:"grade_level" binding:"omitempty,max=20"`
	Address           string `json:"address"`
	Specialization    string `json:"specialization" binding:"omitempty,max=100"`
	YearsOfExperience *int   `json:"years_of_experience" binding:"omitempty,gte=0"`
}

type UpdateUserInput struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=30"`

	GradeLevel        *string `json:"grade_level" binding:"omitempty,max=20"`
	Address           *string `json:"address"`
	Specialization    *string `json:"specialization" binding:"omitempty,max=100"`
	YearsOfExperience *int    `json:"years_of_experience" binding:"omitempty,gte=0"`
}

type ResetUserPasswordInput struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type BulkDeleteUsersInput struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

type BulkUpdateRoleInput struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
	Role    string `json:"role" binding:"required,oneof=Admin Parent Kid Teacher"`
}

type CreateAdminInput struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=Admin SuperAdmin"`
}
