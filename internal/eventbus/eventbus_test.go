package eventbus

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// TestMemoryBusPublishSubscribe проверяет доставку события подписчику
func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus(16)

	var received int32
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{"tile_broken"}},
		func(ctx context.Context, ev *Envelope) {
			atomic.AddInt32(&received, 1)
		})
	if err != nil {
		t.Fatalf("Ошибка подписки: %v", err)
	}

	err = bus.Publish(context.Background(), &Envelope{
		ID:        "test-1",
		Timestamp: time.Now().UTC(),
		Source:    "world",
		EventType: "tile_broken",
		Priority:  3,
	})
	if err != nil {
		t.Fatalf("Ошибка публикации: %v", err)
	}

	// Доставка асинхронная
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&received) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if atomic.LoadInt32(&received) != 1 {
		t.Errorf("Событие не доставлено подписчику: %d", received)
	}

	if got := bus.Metrics().Published; got != 1 {
		t.Errorf("Метрика Published: ожидалось 1, получено %d", got)
	}
}

// TestMemoryBusFilter проверяет фильтрацию по типу и источнику
func TestMemoryBusFilter(t *testing.T) {
	bus := NewMemoryBus(16)

	var matched, all int32
	_, _ = bus.Subscribe(context.Background(), Filter{Types: []string{"detonation"}},
		func(ctx context.Context, ev *Envelope) { atomic.AddInt32(&matched, 1) })
	_, _ = bus.Subscribe(context.Background(), Filter{},
		func(ctx context.Context, ev *Envelope) { atomic.AddInt32(&all, 1) })

	_ = bus.Publish(context.Background(), &Envelope{EventType: "tile_broken", Source: "world"})
	_ = bus.Publish(context.Background(), &Envelope{EventType: "detonation", Source: "world"})

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&all) < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if got := atomic.LoadInt32(&matched); got != 1 {
		t.Errorf("Фильтр по типу: ожидалось 1 событие, получено %d", got)
	}
	if got := atomic.LoadInt32(&all); got != 2 {
		t.Errorf("Подписка без фильтра: ожидалось 2 события, получено %d", got)
	}
}

// TestMemoryBusBackpressure проверяет дроп низкоприоритетных событий
// при заполненном буфере.
func TestMemoryBusBackpressure(t *testing.T) {
	// Шина без подписчиков и с крошечным буфером
	bus := NewMemoryBus(1).(*memoryBus)
	// Останавливаем диспетчер, заполняя буфер напрямую
	bus.buffer <- &Envelope{EventType: "stuffing"}

	// Дожидаемся, пока диспетчер вынет событие, и забиваем буфер снова
	time.Sleep(50 * time.Millisecond)
	bus.buffer <- &Envelope{EventType: "stuffing"}
	time.Sleep(50 * time.Millisecond)
	bus.buffer <- &Envelope{EventType: "stuffing"}

	// Низкий приоритет при заполненном буфере не блокирует
	done := make(chan error, 1)
	go func() {
		done <- bus.Publish(context.Background(), &Envelope{EventType: "low", Priority: 1})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Публикация низкого приоритета вернула ошибку: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Публикация низкого приоритета заблокировалась")
	}
}

// TestGlobalBusUninitialized проверяет, что публикация без Init — no-op
func TestGlobalBusUninitialized(t *testing.T) {
	old := globalBus
	globalBus = nil
	defer func() { globalBus = old }()

	if err := Publish(context.Background(), &Envelope{EventType: "orphan"}); err != nil {
		t.Errorf("Публикация без шины вернула ошибку: %v", err)
	}
}

// TestMemoryBusUnsubscribe проверяет отписку
func TestMemoryBusUnsubscribe(t *testing.T) {
	bus := NewMemoryBus(16)

	var received int32
	sub, _ := bus.Subscribe(context.Background(), Filter{},
		func(ctx context.Context, ev *Envelope) { atomic.AddInt32(&received, 1) })
	sub.Unsubscribe()

	_ = bus.Publish(context.Background(), &Envelope{EventType: "after_unsub"})
	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(&received); got != 0 {
		t.Errorf("Отписанный обработчик получил %d событий", got)
	}
}
