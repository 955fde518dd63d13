package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"
)

// Statuses is the closed set of values a BookInstance.Status can hold.
var Statuses = []string{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID        int        `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	BookID    int        `bun:",nullzero" json:"book_id"`
	Book      *Book      `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Imprint   string     `bun:",nullzero" json:"imprint"`
	Status    string     `bun:",nullzero" json:"status"`
	DueBack   *time.Time `json:"due_back"`
}

func (bi *BookInstance) PrimaryKey() int      { return bi.ID }
func (bi *BookInstance) SetPrimaryKey(id int) { bi.ID = id }
func (bi *BookInstance) Touch(now time.Time)  { touch(&bi.CreatedAt, &bi.UpdatedAt, now) }
