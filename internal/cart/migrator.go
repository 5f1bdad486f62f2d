package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/mariomendez/storefront-backend/pkg/enums"
	"github.com/mariomendez/storefront-backend/pkg/logger"
	"github.com/mariomendez/storefront-backend/pkg/metrics"
)

// Migrator moves a guest cart into the signed-in user's server cart exactly
// once per authentication transition. Failures never block sign-in: the
// guest cart stays intact and the next transition retries.
type Migrator struct {
	guest   *GuestStore
	remote  RemoteCart
	log     *logger.Logger
	metrics *metrics.CartMetrics

	mu    sync.Mutex
	state enums.MigrationState
}

// NewMigrator wires a migrator over the guest and server cart stores.
func NewMigrator(guest *GuestStore, remote RemoteCart, log *logger.Logger, m *metrics.CartMetrics) (*Migrator, error) {
	if guest == nil {
		return nil, fmt.Errorf("guest store required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote cart required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Migrator{
		guest:   guest,
		remote:  remote,
		log:     log,
		metrics: m,
		state:   enums.MigrationStateNotMigrated,
	}, nil
}

// State reports the current migration state.
func (m *Migrator) State() enums.MigrationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Run transfers the guest session's cart into the user's server cart. It is
// idempotent: once migrated, later calls are no-ops, and a failed attempt
// leaves the guest cart untouched for retry. The returned cart is the
// server cart after a successful transfer, nil otherwise. Run never returns
// an error for a failed transfer; it logs and leaves state retry-eligible.
func (m *Migrator) Run(ctx context.Context, userID uuid.UUID, sessionID string) *Cart {
	if !m.begin() {
		return nil
	}
	ctx = m.log.WithUserID(m.log.WithSessionID(ctx, sessionID), userID.String())

	guestCart, _ := m.guest.Load(ctx, sessionID)
	if guestCart.IsEmpty() {
		m.finish(enums.MigrationStateMigrated)
		m.metrics.IncMigration("noop")
		m.log.Debug(ctx, "guest cart empty, nothing to migrate")
		return nil
	}

	payload := make([]MigrationItem, 0, len(guestCart.Items))
	for _, item := range guestCart.Items {
		payload = append(payload, MigrationItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Image:      item.FeaturedImage,
			Quantity:   item.Quantity,
			PriceCents: item.UnitPriceCents,
			Variant:    item.Variant,
		})
	}

	if err := m.remote.Migrate(ctx, userID, payload); err != nil {
		m.finish(enums.MigrationStateFailed)
		m.metrics.IncMigration("failed")
		m.log.Error(ctx, "cart migration failed, guest cart preserved for retry", err)
		return nil
	}
	m.finish(enums.MigrationStateMigrated)
	m.metrics.IncMigration("migrated")

	// Cleanup and reload are best-effort: the transfer already committed.
	var cleanup error
	if _, err := m.guest.Clear(ctx, guestCart.SessionID); err != nil {
		cleanup = multierr.Append(cleanup, fmt.Errorf("clearing guest cart: %w", err))
	}
	serverCart, err := m.remote.Load(ctx, userID)
	if err != nil {
		cleanup = multierr.Append(cleanup, fmt.Errorf("reloading server cart: %w", err))
	}
	if cleanup != nil {
		m.log.Error(ctx, "post-migration cleanup incomplete", cleanup)
	}
	return serverCart
}

// begin claims the migration slot. Only NotMigrated and Failed are
// eligible; Migrating blocks concurrent runs and Migrated is terminal.
func (m *Migrator) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != enums.MigrationStateNotMigrated && m.state != enums.MigrationStateFailed {
		return false
	}
	m.state = enums.MigrationStateMigrating
	return true
}

func (m *Migrator) finish(state enums.MigrationState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}
