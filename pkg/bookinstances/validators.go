package bookinstances

import (
	"github.com/locallibrary/catalog/pkg/binder"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
)

type BookInstancePayload struct {
	Book    int    `json:"book" form:"book" validate:"required,gt=0"`
	Imprint string `json:"imprint" form:"imprint" mod:"trim,escape" validate:"required,max=200"`
	Status  string `json:"status" form:"status" mod:"trim" default:"Maintenance" validate:"oneof=Available Maintenance Loaned Reserved"`
	DueBack string `json:"due_back" form:"due_back" mod:"trim" validate:"omitempty,iso8601"`
}

func (p BookInstancePayload) toModel() (*models.BookInstance, error) {
	dueBack, err := binder.ParseDate(p.DueBack)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &models.BookInstance{
		BookID:  p.Book,
		Imprint: p.Imprint,
		Status:  p.Status,
		DueBack: dueBack,
	}, nil
}
