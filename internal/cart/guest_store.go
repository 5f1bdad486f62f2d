package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/pkg/clock"
	pkgerrors "github.com/mariomendez/storefront-backend/pkg/errors"
	"github.com/mariomendez/storefront-backend/pkg/logger"
	"github.com/mariomendez/storefront-backend/pkg/metrics"
	"github.com/mariomendez/storefront-backend/pkg/redis"
)

// DefaultGuestCartTTL bounds how long an untouched guest cart survives,
// measured from creation rather than last write.
const DefaultGuestCartTTL = 14 * 24 * time.Hour

// GuestStore keeps anonymous carts in a key/value store, one record per
// guest session. Reads never fail the caller: anything missing, expired or
// unparsable degrades to a fresh empty cart with a new session id. Writes
// re-persist the full record and do surface storage errors.
type GuestStore struct {
	kv      KV
	clock   clock.Clock
	ttl     time.Duration
	log     *logger.Logger
	metrics *metrics.CartMetrics
}

// NewGuestStore wires a guest cart store over the provided KV backend.
func NewGuestStore(kv KV, clk clock.Clock, ttl time.Duration, log *logger.Logger, m *metrics.CartMetrics) (*GuestStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if clk == nil {
		clk = clock.System()
	}
	if ttl <= 0 {
		ttl = DefaultGuestCartTTL
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &GuestStore{kv: kv, clock: clk, ttl: ttl, log: log, metrics: m}, nil
}

// Load returns the guest cart for the session. A blank session id, a missing
// record, an expired record or a corrupt payload all yield a fresh empty
// cart carrying a new session id.
func (s *GuestStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	cart, _ := s.loadOrFresh(ctx, sessionID)
	return cart, nil
}

// Add builds a line from the input and merges it into the session's cart.
func (s *GuestStore) Add(ctx context.Context, sessionID string, input AddInput) (*Cart, error) {
	item, err := NewItem(input)
	if err != nil {
		return nil, err
	}
	cart, _ := s.loadOrFresh(ctx, sessionID)
	cart.upsert(item)
	cart.recompute(s.clock.Now())
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove drops the line matching (productID, variantID). A blank variantID
// targets the plain line for the product. Missing lines are a no-op.
func (s *GuestStore) Remove(ctx context.Context, sessionID string, productID uuid.UUID, variantID string) (*Cart, error) {
	cart, _ := s.loadOrFresh(ctx, sessionID)
	if !cart.removeItem(Identity{ProductID: productID, VariantKey: variantID}) {
		return cart, nil
	}
	cart.recompute(s.clock.Now())
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity replaces the quantity on the matching line. Zero or
// negative quantities remove the line. Missing lines are a no-op.
func (s *GuestStore) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, variantID string) (*Cart, error) {
	cart, _ := s.loadOrFresh(ctx, sessionID)
	if !cart.setQuantity(Identity{ProductID: productID, VariantKey: variantID}, quantity) {
		return cart, nil
	}
	cart.recompute(s.clock.Now())
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the session's records and starts a fresh cart under a new
// session id, so a later shopper on the same client never inherits state.
func (s *GuestStore) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID != "" {
		if err := s.kv.Del(ctx, redis.GuestCartKey(sessionID), redis.GuestSessionKey(sessionID)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing guest cart")
		}
	}
	cart := s.freshCart()
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// loadOrFresh resolves the session's cart, falling back to a fresh cart on
// every degradation path. The bool reports whether a stored cart was found.
func (s *GuestStore) loadOrFresh(ctx context.Context, sessionID string) (*Cart, bool) {
	if sessionID == "" {
		return s.freshCart(), false
	}
	raw, found, err := s.kv.Get(ctx, redis.GuestCartKey(sessionID))
	if err != nil {
		s.log.Error(s.log.WithSessionID(ctx, sessionID), "guest cart read failed, serving empty cart", err)
		return s.freshCart(), false
	}
	if !found {
		return s.freshCart(), false
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		s.log.Warn(s.log.WithSessionID(ctx, sessionID), "guest cart payload corrupt, resetting")
		return s.freshCart(), false
	}
	cart.SessionID = sessionID
	if s.expired(&cart) {
		if err := s.kv.Del(ctx, redis.GuestCartKey(sessionID), redis.GuestSessionKey(sessionID)); err != nil {
			s.log.Error(s.log.WithSessionID(ctx, sessionID), "expired guest cart cleanup failed", err)
		}
		s.metrics.IncExpiredGuestCart()
		return s.freshCart(), false
	}
	return &cart, true
}

func (s *GuestStore) expired(cart *Cart) bool {
	if cart.CreatedAt.IsZero() {
		return false
	}
	return s.clock.Now().After(cart.CreatedAt.Add(s.ttl))
}

func (s *GuestStore) freshCart() *Cart {
	now := s.clock.Now()
	return &Cart{
		SessionID: uuid.NewString(),
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// persist writes the full cart record and its companion session key. The
// storage TTL shrinks as the cart ages so expiry stays anchored to creation.
func (s *GuestStore) persist(ctx context.Context, cart *Cart) error {
	remaining := cart.CreatedAt.Add(s.ttl).Sub(s.clock.Now())
	if remaining <= 0 {
		remaining = time.Minute
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding guest cart")
	}
	if err := s.kv.Set(ctx, redis.GuestCartKey(cart.SessionID), string(payload), remaining); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting guest cart")
	}
	if err := s.kv.Set(ctx, redis.GuestSessionKey(cart.SessionID), cart.SessionID, remaining); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting guest session")
	}
	return nil
}
