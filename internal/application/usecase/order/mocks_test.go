package order

import (
	"context"
	"sync"
	"time"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// mockOrderRepository keeps orders in memory keyed by product_id.
type mockOrderRepository struct {
	mu        sync.Mutex
	orders    map[string]*entity.Order
	createErr error
	updateErr error
	creates   int
	lastList  adapter.OrderFilter
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: map[string]*entity.Order{}}
}

func (m *mockOrderRepository) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.orders[o.ProductID]; exists {
		return domainerror.ErrOrderCodeTaken
	}
	stored := *o
	m.orders[o.ProductID] = &stored
	return nil
}

func (m *mockOrderRepository) FindByCode(_ context.Context, code string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[code]
	if !ok {
		return nil, domainerror.ErrOrderNotFound
	}
	found := *o
	return &found, nil
}

func (m *mockOrderRepository) List(_ context.Context, filter adapter.OrderFilter) ([]*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = filter
	out := make([]*entity.Order, 0, len(m.orders))
	for _, o := range m.orders {
		found := *o
		out = append(out, &found)
	}
	return out, nil
}

func (m *mockOrderRepository) Update(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.orders[o.ProductID]; !ok {
		return domainerror.ErrOrderNotFound
	}
	stored := *o
	m.orders[o.ProductID] = &stored
	return nil
}

func (m *mockOrderRepository) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[code]; !ok {
		return domainerror.ErrOrderNotFound
	}
	delete(m.orders, code)
	return nil
}

// mockImageStorage records saved and deleted keys.
type mockImageStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	saveErr error
}

func newMockImageStorage() *mockImageStorage {
	return &mockImageStorage{objects: map[string][]byte{}}
}

func (m *mockImageStorage) Save(_ context.Context, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.objects[key] = data
	return nil
}

func (m *mockImageStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockImageStorage) URL(key string) string {
	return "/media/" + key
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// sequenceCodes returns the given codes in order, repeating the last one.
func sequenceCodes(codes ...string) CodeGenerator {
	i := 0
	return func() (string, error) {
		code := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return code, nil
	}
}

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
