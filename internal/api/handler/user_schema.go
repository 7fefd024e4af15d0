package handler

import "github.com/trucklog/joblog-api/internal/core/domain"

type createUserRequest struct {
	Username string `json:"username"  validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	Role     string `json:"role"      validate:"omitempty,oneof=user admin manager"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type updateUserRequest struct {
	Username string `json:"username"  validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"omitempty,min=6"`
	Role     string `json:"role"      validate:"omitempty,oneof=user admin manager"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type listUsersResponse struct {
	Data []*domain.User `json:"data"`
}
