package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"currency-converter/internal/kafka"
	"currency-converter/internal/models"
)

const (
	defaultNotifyQueueSize = 100
	notifySendTimeout      = 5 * time.Second
)

// Notifier получает каждый успешно сохранённый snapshot. Не должен блокировать обновление.
type Notifier interface {
	Notify(snapshot *models.RateSnapshot)
}

// RefreshNotifier отправляет RatesRefreshedEvent в kafka из одного фонового воркера.
type RefreshNotifier struct {
	producer kafka.Producer
	log      *slog.Logger

	eventQueue chan models.RatesRefreshedEvent
	wg         sync.WaitGroup
	stopCh     chan struct{}
	stopOnce   sync.Once
}

func NewRefreshNotifier(producer kafka.Producer, queueSize int, log *slog.Logger) *RefreshNotifier {
	if queueSize <= 0 {
		queueSize = defaultNotifyQueueSize
	}

	n := &RefreshNotifier{
		producer:   producer,
		log:        log,
		eventQueue: make(chan models.RatesRefreshedEvent, queueSize),
		stopCh:     make(chan struct{}),
	}

	n.wg.Add(1)
	go n.worker()

	return n
}

func (n *RefreshNotifier) Notify(snapshot *models.RateSnapshot) {
	event := models.NewRatesRefreshedEvent(snapshot)

	select {
	case <-n.stopCh:
		n.log.Warn("notifier остановлен, событие отброшено", slog.String("event_id", event.EventID.String()))
		return
	default:
	}

	select {
	case n.eventQueue <- event:
		n.log.Debug("событие об обновлении курсов добавлено в очередь", slog.String("event_id", event.EventID.String()))
	default:
		n.log.Error("очередь событий переполнена, событие отброшено",
			slog.String("event_id", event.EventID.String()),
			slog.Int("currency_count", event.CurrencyCount))
	}
}

func (n *RefreshNotifier) worker() {
	defer n.wg.Done()
	n.log.Info("kafka worker started")

	for {
		select {
		case event := <-n.eventQueue:
			n.send(event)

		case <-n.stopCh:
			for {
				select {
				case event := <-n.eventQueue:
					n.send(event)
				default:
					n.log.Info("kafka worker stopping")
					return
				}
			}
		}
	}
}

func (n *RefreshNotifier) send(event models.RatesRefreshedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), notifySendTimeout)
	defer cancel()

	if err := n.producer.SendRatesRefreshedEvent(ctx, event); err != nil {
		n.log.Error("kafka send failed",
			slog.String("event_id", event.EventID.String()),
			slog.String("error", err.Error()))
		return
	}
	n.log.Info("event sent to kafka", slog.String("event_id", event.EventID.String()))
}

// Shutdown останавливает воркер, отправив то, что уже в очереди.
func (n *RefreshNotifier) Shutdown(ctx context.Context) error {
	n.log.Info("shutting down refresh notifier")

	n.stopOnce.Do(func() { close(n.stopCh) })

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		n.log.Info("kafka worker stopped")
		return nil
	case <-ctx.Done():
		n.log.Warn("shutdown timeout exceeded")
		return ctx.Err()
	}
}

var _ Notifier = (*RefreshNotifier)(nil)
