package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `bun:",nullzero" json:"title"`
	AuthorID  int       `bun:",nullzero" json:"author_id"`
	Author    *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Summary   string    `bun:",nullzero" json:"summary"`
	ISBN      string    `bun:"isbn,nullzero" json:"isbn"`
	Genres    []*Genre  `bun:"m2m:book_genres,join:Book=Genre" json:"genre,omitempty"`
}

func (b *Book) PrimaryKey() int      { return b.ID }
func (b *Book) SetPrimaryKey(id int) { b.ID = id }
func (b *Book) Touch(now time.Time)  { touch(&b.CreatedAt, &b.UpdatedAt, now) }

// GenreIDs returns the ids of the loaded genres.
func (b *Book) GenreIDs() []int {
	ids := make([]int, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}
