package user

import domain "event-registry-service/internal/domain/user"

// CreateUserRequest represents the request payload for creating a new user.
// ID is optional; when empty the usecase generates one.
type CreateUserRequest struct {
	ID          string `validate:"omitempty,max=64"`
	Name        string `validate:"required,min=1,max=100"`
	ChineseName string `validate:"omitempty,max=100"`
	Gender      string `validate:"required,oneof=male female other"`
	DateOfBirth string `validate:"required,datetime=2006-01-02"`
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"omitempty,max=32"`
}

// UpdateUserRequest represents the request payload for updating an existing
// user. All fields are overwritten in place under the same id.
type UpdateUserRequest struct {
	ID          string `validate:"required"`
	Name        string `validate:"required,min=1,max=100"`
	ChineseName string `validate:"omitempty,max=100"`
	Gender      string `validate:"required,oneof=male female other"`
	DateOfBirth string `validate:"required,datetime=2006-01-02"`
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"omitempty,max=32"`
}

func (r CreateUserRequest) apply(u *domain.User) {
	u.Name = r.Name
	u.ChineseName = r.ChineseName
	u.Gender = domain.Gender(r.Gender)
	u.DateOfBirth = r.DateOfBirth
	u.Email = r.Email
	u.PhoneNumber = r.PhoneNumber
}

func (r UpdateUserRequest) apply(u *domain.User) {
	u.Name = r.Name
	u.ChineseName = r.ChineseName
	u.Gender = domain.Gender(r.Gender)
	u.DateOfBirth = r.DateOfBirth
	u.Email = r.Email
	u.PhoneNumber = r.PhoneNumber
}
