package application

import (
	"context"
	"errors"
	"time"

	"github.com/RaikyD/b2-orders-service/internal/domain"
	"github.com/RaikyD/b2-orders-service/internal/export"
	"github.com/RaikyD/b2-orders-service/internal/logger"
	"github.com/RaikyD/b2-orders-service/internal/metrics"
	"github.com/RaikyD/b2-orders-service/internal/repository"
)

const publishTimeout = 5 * time.Second

// EventPublisher - куда уходит событие о готовой выгрузке (kafka producer).
type EventPublisher interface {
	PublishExport(ctx context.Context, ev domain.ExportEvent) error
}

type OrdersService struct {
	repo      repository.OrderRepo
	builder   *export.Builder
	metrics   *metrics.Metrics
	publisher EventPublisher
}

// ExportOutcome - файл плюс то, чего не нашлось в хранилище.
type ExportOutcome struct {
	*export.Result
	Requested int
	Missing   []int64
}

// publisher может быть nil - тогда события не отправляются.
func NewOrdersService(r repository.OrderRepo, b *export.Builder, m *metrics.Metrics, p EventPublisher) *OrdersService {
	return &OrdersService{
		repo:      r,
		builder:   b,
		metrics:   m,
		publisher: p,
	}
}

// AddOrder сохраняет заказ из формы. source - откуда пришёл ("http", "kafka").
func (s *OrdersService) AddOrder(ctx context.Context, form domain.IntakeForm, source string) (*domain.Order, error) {
	o := form.ToOrder()
	if err := s.repo.AddOrder(ctx, &o); err != nil {
		logger.Warn("Error while adding order", "source", source, "err", err)
		return nil, &export.StoreError{Err: err}
	}
	s.metrics.OrderIngested(source)
	logger.Info("order added", "id", o.ID, "source", source)
	return &o, nil
}

func (s *OrdersService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		logger.Error("list orders failed", "err", err)
		return nil, &export.StoreError{Err: err}
	}
	return orders, nil
}

func (s *OrdersService) Columns() []export.ColumnDefinition {
	return s.builder.Registry().All()
}

// Export собирает файл B2 по выбранным заказам.
func (s *OrdersService) Export(ctx context.Context, req export.Request) (*ExportOutcome, error) {
	start := time.Now()
	out, err := s.export(ctx, req)

	result := metrics.ResultOK
	var (
		ve *export.ValidationError
		uc *export.UnknownColumnError
		se *export.StoreError
	)
	switch {
	case err == nil:
	case errors.As(err, &ve), errors.As(err, &uc):
		result = metrics.ResultInvalid
	case errors.As(err, &se):
		result = metrics.ResultStoreError
	default:
		result = metrics.ResultEncodingError
	}

	if err != nil {
		s.metrics.ExportFinished(result, req.Format, 0, 0, time.Since(start))
		return nil, err
	}
	s.metrics.ExportFinished(result, out.Format, out.Rows, len(out.Missing), time.Since(start))
	s.publish(ctx, out)
	return out, nil
}

func (s *OrdersService) export(ctx context.Context, req export.Request) (*ExportOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	orders, missing, err := s.fetch(ctx, req)
	if err != nil {
		logger.Error("export: order store failed", "err", err)
		return nil, &export.StoreError{Err: err}
	}
	if len(missing) > 0 {
		logger.Warn("export: selected orders not found", "missing", missing, "found", len(orders))
	}
	if len(orders) == 0 {
		return nil, export.ErrNoSelection
	}

	res, err := s.builder.Build(orders, export.BuildOptions{
		Columns:   req.Columns,
		Overrides: req.Overrides(),
		Format:    req.Format,
		Charset:   req.Charset,
	})
	if err != nil {
		var ee *export.EncodingError
		if errors.As(err, &ee) {
			logger.Error("export: encoding failed", "stage", ee.Stage, "err", ee.Err)
		}
		return nil, err
	}

	requested := len(req.Selections)
	if requested == 0 {
		requested = len(orders)
	}
	logger.Info("export built", "id", res.ID, "rows", res.Rows, "format", res.Format, "charset", res.Charset)
	return &ExportOutcome{Result: res, Requested: requested, Missing: missing}, nil
}

// fetch возвращает заказы в порядке выбора и id, которых нет в хранилище.
func (s *OrdersService) fetch(ctx context.Context, req export.Request) ([]domain.Order, []int64, error) {
	if len(req.Selections) == 0 {
		orders, err := s.repo.ListOrders(ctx)
		return orders, nil, err
	}

	ids := req.IDs()
	found, err := s.repo.ListOrdersByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[int64]domain.Order, len(found))
	for _, o := range found {
		byID[o.ID] = o
	}
	orders := make([]domain.Order, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		o, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		orders = append(orders, o)
	}
	return orders, missing, nil
}

// publish - best effort: выгрузка уже готова, ошибка брокера её не отменяет.
func (s *OrdersService) publish(ctx context.Context, out *ExportOutcome) {
	if s.publisher == nil {
		return
	}
	cols := make([]string, len(out.Columns))
	for i, c := range out.Columns {
		cols[i] = c.ID
	}
	ev := domain.ExportEvent{
		Type:       domain.EventExportCompleted,
		ExportID:   out.ID.String(),
		Format:     out.Format,
		Charset:    out.Charset,
		Rows:       out.Rows,
		Requested:  out.Requested,
		MissingIDs: out.Missing,
		Columns:    cols,
		ExportedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishExport(ctx, ev); err != nil {
		logger.Warn("export event publish failed", "id", ev.ExportID, "err", err)
	}
}
