package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RaikyD/b2-orders-service/internal/domain"
)

// MemoryOrderRepository - хранилище в памяти, когда DATABASE_URL не задан. Данные живут до рестарта.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
	nextID int64
	now    func() time.Time
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[int64]domain.Order),
		now:    time.Now,
	}
}

func (m *MemoryOrderRepository) AddOrder(ctx context.Context, o *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	o.ID = m.nextID
	o.CreatedAt = m.now().UTC()
	m.orders[o.ID] = clone(*o)
	return nil
}

func (m *MemoryOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, clone(o))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryOrderRepository) ListOrdersByIDs(ctx context.Context, ids []int64) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := m.orders[id]; ok {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

// clone копирует указатель на дату, чтобы вызывающий не менял данные в хранилище.
func clone(o domain.Order) domain.Order {
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		o.DeliveryDate = &d
	}
	return o
}
