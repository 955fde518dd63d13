package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FirstName string    `bun:",nullzero" json:"first_name"`
	LastName  string    `bun:",nullzero" json:"last_name"`
	Email     string    `bun:",nullzero" json:"email"`
	Password  string    `bun:",nullzero" json:"-"` // Never expose the password
}

func (u *User) PrimaryKey() int      { return u.ID }
func (u *User) SetPrimaryKey(id int) { u.ID = id }
func (u *User) Touch(now time.Time)  { touch(&u.CreatedAt, &u.UpdatedAt, now) }
