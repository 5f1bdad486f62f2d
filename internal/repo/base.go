package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is the shared foundation domain repositories embed: it owns the gorm
// handle and the context/transaction binding so repositories only spell out
// their queries.
type Base struct {
	db *gorm.DB
}

// NewBase binds a Base to the provided connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection scoped to ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithTx returns a Base bound to the transaction. A nil tx returns the
// receiver unchanged, so callers can pass through optional transactions.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}
