package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
}

func (g *Genre) PrimaryKey() int      { return g.ID }
func (g *Genre) SetPrimaryKey(id int) { g.ID = id }
func (g *Genre) Touch(now time.Time)  { touch(&g.CreatedAt, &g.UpdatedAt, now) }

// BookGenre is the link table behind Book.Genres.
type BookGenre struct {
	bun.BaseModel `bun:"table:book_genres,alias:bg"`

	BookID  int    `bun:",pk" json:"book_id"`
	Book    *Book  `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	GenreID int    `bun:",pk" json:"genre_id"`
	Genre   *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
}
