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

	// Migrate creates the schema idempotently.
	Migrate(ctx context.Context) error

	// Contact model related methods.
	CreateContact(ctx context.Context, create *Contact) (*Contact, error)
	ListContacts(ctx context.Context, find *FindContact) ([]*Contact, error)
	DeleteContact(ctx context.Context, delete *DeleteContact) error

	// ChatExchange model related methods. The log is append-only;
	// there is deliberately no update method.
	CreateChatExchange(ctx context.Context, create *ChatExchange) (*ChatExchange, error)
	ListChatExchanges(ctx context.Context, find *FindChatExchange) ([]*ChatExchange, error)
}
