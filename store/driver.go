package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// EnsureSchema creates the tables and indexes if they do not exist.
	EnsureSchema(ctx context.Context) error

	// Consultant model related methods.
	CreateConsultant(ctx context.Context, create *Consultant) (*Consultant, error)
	GetConsultant(ctx context.Context, find *FindConsultant) (*Consultant, error)
	ListConsultants(ctx context.Context, find *FindConsultant) ([]*Consultant, error)

	// ChatRecord model related methods.
	CreateChatRecord(ctx context.Context, create *ChatRecord) (*ChatRecord, error)
	GetChatRecord(ctx context.Context, find *FindChatRecord) (*ChatRecord, error)
	ListChatRecords(ctx context.Context, find *FindChatRecord) ([]*ChatRecord, error)
	UpdateChatRecord(ctx context.Context, update *UpdateChatRecord) (*ChatRecord, error)

	// ChatTurn model related methods.
	CreateChatTurn(ctx context.Context, create *CreateChatTurn) (*ChatTurn, error)
	CreateChatExchange(ctx context.Context, create *CreateChatExchange) error
	ListChatTurns(ctx context.Context, find *FindChatTurn) ([]*ChatTurn, error)
}
