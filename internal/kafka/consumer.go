package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"currency-converter/internal/models"

	"github.com/IBM/sarama"
)

// SnapshotSink принимает snapshot, полученный другим экземпляром сервиса.
type SnapshotSink interface {
	Adopt(ctx context.Context, snapshot *models.RateSnapshot) (bool, error)
}

// Consumer читает RatesRefreshedEvent других экземпляров и передаёт snapshot в SnapshotSink.
// Каждому экземпляру нужен свой group id, чтобы получать все события.
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       *consumerGroupHandler
	topic         string
	log           *slog.Logger
	wg            sync.WaitGroup
}

func NewConsumer(brokers []string, groupID, topic string, sink SnapshotSink, log *slog.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	log.Info("kafka consumer создан",
		slog.String("group_id", groupID),
		slog.String("topic", topic))

	return &Consumer{
		consumerGroup: consumerGroup,
		handler:       &consumerGroupHandler{sink: sink, log: log},
		topic:         topic,
		log:           log,
	}, nil
}

func (c *Consumer) Start(ctx context.Context) {
	c.log.Info("запуск kafka consumer")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		for {
			if err := c.consumerGroup.Consume(ctx, []string{c.topic}, c.handler); err != nil {
				c.log.Error("ошибка consume", slog.String("error", err.Error()))
				return
			}

			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.log.Error("ошибка consumer group", slog.String("error", err.Error()))
		}
	}()
}

func (c *Consumer) Close(ctx context.Context) error {
	c.log.Info("закрытие kafka consumer")

	done := make(chan struct{})
	go func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Error("failed to close consumer group", slog.String("error", err.Error()))
		}
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.log.Info("kafka consumer закрыт")
		return nil
	case <-ctx.Done():
		c.log.Warn("kafka consumer close timeout")
		return ctx.Err()
	}
}

type consumerGroupHandler struct {
	sink SnapshotSink
	log  *slog.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.processMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// processMessage никогда не возвращает сообщение в очередь: битое или устаревшее событие
// просто пропускается, следующий refresh любого экземпляра его перекроет.
func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	h.log.Debug("получено сообщение из kafka",
		slog.String("topic", message.Topic),
		slog.Int("partition", int(message.Partition)),
		slog.Int64("offset", message.Offset))

	var event models.RatesRefreshedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.Error("ошибка десериализации сообщения",
			slog.String("error", err.Error()),
			slog.String("raw_message", string(message.Value)))
		return
	}

	if event.Snapshot == nil {
		h.log.Debug("событие без snapshot, пропуск", slog.String("event_id", event.EventID.String()))
		return
	}

	adopted, err := h.sink.Adopt(ctx, event.Snapshot)
	if err != nil {
		h.log.Warn("snapshot из события отклонён",
			slog.String("event_id", event.EventID.String()),
			slog.String("error", err.Error()))
		return
	}

	h.log.Info("событие обработано",
		slog.String("event_id", event.EventID.String()),
		slog.Bool("adopted", adopted))
}
