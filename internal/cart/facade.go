package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/pkg/logger"
	"github.com/mariomendez/storefront-backend/pkg/metrics"
)

// Actor identifies who a cart operation runs for. A non-nil UserID selects
// the server backend; otherwise the guest session backend is used. Backend
// selection is explicit per call, never inferred from ambient state.
type Actor struct {
	UserID         *uuid.UUID
	GuestSessionID string
}

// Authenticated reports whether the actor has a signed-in user.
func (a Actor) Authenticated() bool {
	return a.UserID != nil
}

const (
	backendGuest  = "guest"
	backendServer = "server"
)

// Facade routes cart operations to the guest or server backend based on the
// actor. Reads fail open: if the server cart cannot be reached, the guest
// cart is served so browsing continues. Writes fail closed and surface the
// backend error.
type Facade struct {
	guest   *GuestStore
	remote  RemoteCart
	log     *logger.Logger
	metrics *metrics.CartMetrics
}

// NewFacade wires the cart facade over both backends.
func NewFacade(guest *GuestStore, remote RemoteCart, log *logger.Logger, m *metrics.CartMetrics) (*Facade, error) {
	if guest == nil {
		return nil, fmt.Errorf("guest store required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote cart required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Facade{guest: guest, remote: remote, log: log, metrics: m}, nil
}

// Load returns the actor's cart. Server failures degrade to the guest cart.
func (f *Facade) Load(ctx context.Context, actor Actor) (*Cart, error) {
	if actor.Authenticated() {
		f.metrics.IncOperation(backendServer, "load")
		cart, err := f.remote.Load(ctx, *actor.UserID)
		if err == nil {
			return cart, nil
		}
		f.metrics.IncFailure(backendServer, "load")
		f.log.Error(f.log.WithUserID(ctx, actor.UserID.String()), "server cart unavailable, serving guest cart", err)
	} else {
		f.metrics.IncOperation(backendGuest, "load")
	}
	return f.guest.Load(ctx, actor.GuestSessionID)
}

// Add merges a line into the actor's cart.
func (f *Facade) Add(ctx context.Context, actor Actor, input AddInput) (*Cart, error) {
	if actor.Authenticated() {
		return f.instrument(backendServer, "add", func() (*Cart, error) {
			return f.remote.Add(ctx, *actor.UserID, input)
		})
	}
	return f.instrument(backendGuest, "add", func() (*Cart, error) {
		return f.guest.Add(ctx, actor.GuestSessionID, input)
	})
}

// Remove drops the line matching (productID, variantID) from the actor's
// cart.
func (f *Facade) Remove(ctx context.Context, actor Actor, productID uuid.UUID, variantID string) (*Cart, error) {
	if actor.Authenticated() {
		return f.instrument(backendServer, "remove", func() (*Cart, error) {
			return f.remote.Remove(ctx, *actor.UserID, productID, variantID)
		})
	}
	return f.instrument(backendGuest, "remove", func() (*Cart, error) {
		return f.guest.Remove(ctx, actor.GuestSessionID, productID, variantID)
	})
}

// UpdateQuantity replaces the quantity on the matching line.
func (f *Facade) UpdateQuantity(ctx context.Context, actor Actor, productID uuid.UUID, quantity int, variantID string) (*Cart, error) {
	if actor.Authenticated() {
		return f.instrument(backendServer, "update_quantity", func() (*Cart, error) {
			return f.remote.UpdateQuantity(ctx, *actor.UserID, productID, quantity, variantID)
		})
	}
	return f.instrument(backendGuest, "update_quantity", func() (*Cart, error) {
		return f.guest.UpdateQuantity(ctx, actor.GuestSessionID, productID, quantity, variantID)
	})
}

// Clear empties the actor's cart. For guests this also rotates the session.
func (f *Facade) Clear(ctx context.Context, actor Actor) (*Cart, error) {
	if actor.Authenticated() {
		return f.instrument(backendServer, "clear", func() (*Cart, error) {
			return f.remote.Clear(ctx, *actor.UserID)
		})
	}
	return f.instrument(backendGuest, "clear", func() (*Cart, error) {
		return f.guest.Clear(ctx, actor.GuestSessionID)
	})
}

func (f *Facade) instrument(backend, op string, fn func() (*Cart, error)) (*Cart, error) {
	f.metrics.IncOperation(backend, op)
	cart, err := fn()
	if err != nil {
		f.metrics.IncFailure(backend, op)
	}
	return cart, err
}
