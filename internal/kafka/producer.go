package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"currency-converter/internal/models"

	"github.com/IBM/sarama"
)

// Producer публикует события об обновлении курсов.
type Producer interface {
	SendRatesRefreshedEvent(ctx context.Context, event models.RatesRefreshedEvent) error
	Close() error
}

type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *slog.Logger
}

func newSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Timeout = 5 * time.Second
	return config
}

func NewKafkaProducer(brokers []string, topic string, log *slog.Logger) (Producer, error) {
	producer, err := sarama.NewSyncProducer(brokers, newSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer создан", slog.String("topic", topic), slog.Any("brokers", brokers))

	return NewKafkaProducerWithClient(producer, topic, log), nil
}

// NewKafkaProducerWithClient оборачивает готовый sarama.SyncProducer (в тестах mocks.SyncProducer).
func NewKafkaProducerWithClient(producer sarama.SyncProducer, topic string, log *slog.Logger) *KafkaProducer {
	return &KafkaProducer{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// newMessage ключ сообщения базовая валюта: все snapshot одной базы попадают в одну
// партицию и читаются consumer в порядке публикации.
func (p *KafkaProducer) newMessage(event models.RatesRefreshedEvent) (*sarama.ProducerMessage, error) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.Base),
		Value:     sarama.ByteEncoder(eventData),
		Timestamp: event.FetchedAt,
	}, nil
}

func (p *KafkaProducer) SendRatesRefreshedEvent(ctx context.Context, event models.RatesRefreshedEvent) error {
	msg, err := p.newMessage(event)
	if err != nil {
		return err
	}

	type result struct {
		partition int32
		offset    int64
		err       error
	}

	resultCh := make(chan result, 1)

	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		resultCh <- result{partition, offset, err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			p.log.Error("kafka send failed",
				slog.String("event_id", event.EventID.String()),
				slog.String("error", res.err.Error()))
			return res.err
		}
		p.log.Debug("kafka send success",
			slog.String("event_id", event.EventID.String()),
			slog.Int("partition", int(res.partition)),
			slog.Int64("offset", res.offset))
		return nil

	case <-ctx.Done():
		p.log.Warn("kafka send cancelled",
			slog.String("event_id", event.EventID.String()))
		return ctx.Err()
	}
}

func (p *KafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	p.log.Info("закрытие kafka producer")
	return p.producer.Close()
}

type NoOpProducer struct {
	log *slog.Logger
}

func NewNoOpProducer(log *slog.Logger) Producer {
	return &NoOpProducer{log: log}
}

func (p *NoOpProducer) SendRatesRefreshedEvent(ctx context.Context, event models.RatesRefreshedEvent) error {
	p.log.Debug("kafka отключен, событие не отправлено",
		slog.String("event_id", event.EventID.String()))
	return nil
}

func (p *NoOpProducer) Close() error {
	return nil
}
