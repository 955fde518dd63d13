package authors

import (
	"github.com/locallibrary/catalog/pkg/binder"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
)

type AuthorPayload struct {
	FirstName   string `json:"first_name" form:"first_name" mod:"trim,escape" validate:"required,max=100,alphanum"`
	FamilyName  string `json:"family_name" form:"family_name" mod:"trim,escape" validate:"required,max=100,alphanum"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth" mod:"trim" validate:"omitempty,iso8601"`
	DateOfDeath string `json:"date_of_death" form:"date_of_death" mod:"trim" validate:"omitempty,iso8601"`
}

func (p AuthorPayload) toModel() (*models.Author, error) {
	dob, err := binder.ParseDate(p.DateOfBirth)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	dod, err := binder.ParseDate(p.DateOfDeath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &models.Author{
		FirstName:   p.FirstName,
		FamilyName:  p.FamilyName,
		DateOfBirth: dob,
		DateOfDeath: dod,
	}, nil
}
