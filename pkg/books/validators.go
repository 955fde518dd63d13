package books

import (
	"github.com/locallibrary/catalog/pkg/binder"
	"github.com/locallibrary/catalog/pkg/models"
)

// BookPayload binds a book from JSON or a form. Genre accepts a single id or a
// list and is empty when left out.
type BookPayload struct {
	Title   string        `json:"title" form:"title" mod:"trim,escape" validate:"required,max=300"`
	Author  int           `json:"author" form:"author" validate:"required,gt=0"`
	Summary string        `json:"summary" form:"summary" mod:"trim,escape" validate:"required"`
	ISBN    string        `json:"isbn" form:"isbn" mod:"trim,escape" validate:"required,max=20"`
	Genre   binder.IDList `json:"genre" form:"genre" validate:"dive,gt=0"`
}

func (p BookPayload) toModel() *models.Book {
	return &models.Book{
		Title:    p.Title,
		AuthorID: p.Author,
		Summary:  p.Summary,
		ISBN:     p.ISBN,
	}
}
