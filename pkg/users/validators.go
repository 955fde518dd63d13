package users

import "github.com/locallibrary/catalog/pkg/models"

// UserPayload is the body for creating a user.
type UserPayload struct {
	FirstName string `json:"first_name" form:"first_name" mod:"trim,escape" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" mod:"trim,escape" validate:"required,max=100"`
	Email     string `json:"email" form:"email" mod:"trim,lcase" validate:"required,email,max=100"`
	Password  string `json:"password" form:"password" mod:"trim" validate:"required"`
}

// UpdateUserPayload is UserPayload plus the token, which gated routes accept in
// the body.
type UpdateUserPayload struct {
	FirstName string `json:"first_name" form:"first_name" mod:"trim,escape" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" mod:"trim,escape" validate:"required,max=100"`
	Email     string `json:"email" form:"email" mod:"trim,lcase" validate:"required,email,max=100"`
	Password  string `json:"password" form:"password" mod:"trim" validate:"required"`
	Token     string `json:"token" form:"token"`
}

func (p UserPayload) toModel() *models.User {
	return &models.User{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Password:  p.Password,
	}
}

func (p UpdateUserPayload) toModel() *models.User {
	return UserPayload{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Password:  p.Password,
	}.toModel()
}
