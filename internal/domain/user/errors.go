package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrEmployeeCodeExists    = errors.New("employee code already used")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidPasswordLength = errors.New("password must be at least 6 characters")
	ErrManagerAccessRequired = errors.New("manager access required")
)
