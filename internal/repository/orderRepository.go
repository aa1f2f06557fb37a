package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaikyD/b2-orders-service/internal/domain"
	"github.com/RaikyD/b2-orders-service/internal/logger"
)

// OrderRepo - хранилище заказов. Выгрузка только читает (ListOrders / ListOrdersByIDs).
type OrderRepo interface {
	AddOrder(ctx context.Context, order *domain.Order) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByIDs(ctx context.Context, ids []int64) ([]domain.Order, error)
}

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(p *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: p}
}

const orderColumns = `id, last_name, first_name, zipcode, prefecture, city, address, building,
	phone, email, instagram, delivery_date, time_slot, memo, created_at`

func (p *OrderRepository) AddOrder(ctx context.Context, o *domain.Order) error {
	var deliveryDate pgtype.Date
	if o.DeliveryDate != nil {
		deliveryDate = pgtype.Date{Time: *o.DeliveryDate, Valid: true}
	}

	err := p.pool.QueryRow(ctx,
		`INSERT INTO orders (
			last_name, first_name, zipcode, prefecture, city, address, building,
			phone, email, instagram, delivery_date, time_slot, memo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`,
		text(o.LastName),
		text(o.FirstName),
		text(o.Zipcode),
		text(o.Prefecture),
		text(o.City),
		text(o.Address),
		text(o.Building),
		text(o.Phone),
		text(o.Email),
		text(o.Instagram),
		deliveryDate, // NULL если даты нет
		text(o.TimeSlot),
		text(o.Memo),
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		logger.Warn("insert order failed", "err", err)
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListOrders - все заказы, новые первыми.
func (p *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collectOrders(rows)
}

// ListOrdersByIDs - заказы с заданными id. Порядок не гарантируется, несуществующие id пропускаются.
func (p *OrderRepository) ListOrdersByIDs(ctx context.Context, ids []int64) ([]domain.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list orders by ids: %w", err)
	}
	return collectOrders(rows)
}

type orderRow struct {
	ID           int64
	LastName     pgtype.Text
	FirstName    pgtype.Text
	Zipcode      pgtype.Text
	Prefecture   pgtype.Text
	City         pgtype.Text
	Address      pgtype.Text
	Building     pgtype.Text
	Phone        pgtype.Text
	Email        pgtype.Text
	Instagram    pgtype.Text
	DeliveryDate pgtype.Date
	TimeSlot     pgtype.Text
	Memo         pgtype.Text
	CreatedAt    time.Time
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var r orderRow
		if err := rows.Scan(
			&r.ID, &r.LastName, &r.FirstName, &r.Zipcode, &r.Prefecture, &r.City, &r.Address, &r.Building,
			&r.Phone, &r.Email, &r.Instagram, &r.DeliveryDate, &r.TimeSlot, &r.Memo, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, r.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}

func (r orderRow) toDomain() domain.Order {
	o := domain.Order{
		ID:         r.ID,
		LastName:   r.LastName.String,
		FirstName:  r.FirstName.String,
		Zipcode:    r.Zipcode.String,
		Prefecture: r.Prefecture.String,
		City:       r.City.String,
		Address:    r.Address.String,
		Building:   r.Building.String,
		Phone:      r.Phone.String,
		Email:      r.Email.String,
		Instagram:  r.Instagram.String,
		TimeSlot:   r.TimeSlot.String,
		Memo:       r.Memo.String,
		CreatedAt:  r.CreatedAt,
	}
	// infinity/-infinity в DATE за дату не считаем
	if r.DeliveryDate.Valid && r.DeliveryDate.InfinityModifier == pgtype.Finite {
		d := r.DeliveryDate.Time
		o.DeliveryDate = &d
	}
	return o
}

// text: пустая строка уходит в базу как NULL.
func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
