package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID          int        `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FirstName   string     `bun:",nullzero" json:"first_name"`
	FamilyName  string     `bun:",nullzero" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death"`
}

func (a *Author) PrimaryKey() int      { return a.ID }
func (a *Author) SetPrimaryKey(id int) { a.ID = id }
func (a *Author) Touch(now time.Time)  { touch(&a.CreatedAt, &a.UpdatedAt, now) }

// Name returns the author's name in catalog order, e.g. "Tolkien, John".
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}
