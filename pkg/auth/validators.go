package auth

// LoginPayload represents the login request body.
type LoginPayload struct {
	Email    string `json:"email" form:"email" mod:"trim,lcase" validate:"required,email,max=100"`
	Password string `json:"password" form:"password" mod:"trim" validate:"required"`
}
