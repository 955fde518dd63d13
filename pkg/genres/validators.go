package genres

type GenrePayload struct {
	Name string `json:"name" form:"name" mod:"trim,escape" validate:"required,max=100"`
}
