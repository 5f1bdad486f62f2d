package cart

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/logger"
	"github.com/mariomendez/storefront-backend/pkg/types"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

// stepClock is a settable clock for TTL tests.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock(at time.Time) *stepClock {
	return &stepClock{now: at}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// memoryKV is an in-memory KV with injectable failures.
type memoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func teeProduct() *models.Product {
	productID := uuid.MustParse("6d2f8f2e-0a3a-4e08-9d9e-0f4f1c6f0001")
	return &models.Product{
		ID:            productID,
		Name:          "Basic Tee",
		PriceCents:    2500,
		StockQuantity: 30,
		IsActive:      true,
		FeaturedImage: strPtr("https://cdn.example.com/tee.jpg"),
		VariantAttributes: types.VariantAttributes{
			{
				Name:        "color",
				DisplayName: "Color",
				IsRequired:  true,
				Values: []types.VariantAttributeValue{
					{Value: "red", IsActive: true},
					{Value: "blue", IsActive: true},
				},
			},
			{
				Name:        "size",
				DisplayName: "Size",
				IsRequired:  true,
				Values: []types.VariantAttributeValue{
					{Value: "s", IsActive: true},
					{Value: "m", IsActive: true},
				},
			},
		},
		VariantCombinations: []models.VariantCombination{
			{
				ID:        uuid.MustParse("6d2f8f2e-0a3a-4e08-9d9e-0f4f1c6f0101"),
				ProductID: productID,
				SKU:       "TEE-RED-S",
				Attributes: types.AttributePairs{
					{AttributeName: "color", AttributeValue: "red"},
					{AttributeName: "size", AttributeValue: "s"},
				},
				CombinationKey: "color=red|size=s",
				PriceCents:     intPtr(2700),
				StockQuantity:  5,
				IsActive:       true,
			},
			{
				ID:        uuid.MustParse("6d2f8f2e-0a3a-4e08-9d9e-0f4f1c6f0102"),
				ProductID: productID,
				SKU:       "TEE-RED-M",
				Attributes: types.AttributePairs{
					{AttributeName: "color", AttributeValue: "red"},
					{AttributeName: "size", AttributeValue: "m"},
				},
				CombinationKey: "color=red|size=m",
				StockQuantity:  0,
				IsActive:       true,
			},
		},
	}
}

func giftCardProduct() *models.Product {
	return &models.Product{
		ID:            uuid.MustParse("6d2f8f2e-0a3a-4e08-9d9e-0f4f1c6f0002"),
		Name:          "Gift Card",
		PriceCents:    5000,
		StockQuantity: 100,
		IsActive:      true,
		LegacyVariants: types.LegacyVariants{
			{ID: "gc-25", Name: "amount", Value: "25", PriceCents: intPtr(2500)},
			{ID: "gc-50", Name: "amount", Value: "50"},
		},
	}
}

func mugProduct() *models.Product {
	return &models.Product{
		ID:             uuid.MustParse("6d2f8f2e-0a3a-4e08-9d9e-0f4f1c6f0003"),
		Name:           "Camp Mug",
		PriceCents:     1800,
		SalePriceCents: intPtr(1500),
		StockQuantity:  12,
		IsActive:       true,
	}
}
