package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/RaikyD/b2-orders-service/internal/domain"
	"github.com/RaikyD/b2-orders-service/internal/logger"
)

const SourceKafka = "kafka"

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// OrderAdder - сервис, в который consumer складывает формы из топика.
type OrderAdder interface {
	AddOrder(ctx context.Context, form domain.IntakeForm, source string) (*domain.Order, error)
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer читает формы заказов из intake топика (та же форма, что и POST /api/orders).
type Consumer struct {
	r       messageReader
	svc     OrderAdder
	backoff time.Duration
}

func NewConsumer(svc OrderAdder, cfg ConsumerConfig) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         cfg.Brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})
	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)
	return &Consumer{r: r, svc: svc, backoff: 300 * time.Millisecond}
}

// Run блокируется до отмены ctx. Оффсет коммитится только после сохранения заказа
// (или если сообщение заведомо битое).
func (c *Consumer) Run(ctx context.Context) error {
	defer c.r.Close()

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("kafka fetch error", "err", err)
			if !sleep(ctx, c.backoff) {
				return nil
			}
			continue
		}
		logger.Debug("intake message fetched", "partition", m.Partition, "offset", m.Offset)

		// reader группы не отдаст сообщение повторно, поэтому ретраим здесь же
		for !c.handle(ctx, m) {
			if !sleep(ctx, c.backoff) {
				return nil
			}
		}

		if err := c.r.CommitMessages(ctx, m); err != nil {
			logger.Warn("[kafka] commit failed", "err", err)
		}
	}
}

// handle возвращает true, если сообщение можно коммитить.
func (c *Consumer) handle(ctx context.Context, m kafka.Message) bool {
	var form domain.IntakeForm
	if err := json.Unmarshal(m.Value, &form); err != nil {
		logger.Warn("kafka invalid json. skip and commit", "offset", m.Offset, "err", err)
		return true
	}
	if err := form.Validate(); err != nil {
		logger.Warn("kafka invalid order form. skip and commit", "offset", m.Offset, "err", err)
		return true
	}

	o, err := c.svc.AddOrder(ctx, form, SourceKafka)
	if err != nil {
		logger.Warn("kafka add order fail, will retry", "err", err)
		return false
	}
	logger.Info("Order successfully added", "id", o.ID, "partition", m.Partition, "offset", m.Offset)
	return true
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
