package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
)

func newMockedProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	t.Helper()

	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}
	return producer, mockProducer
}

func TestProducer_PublishOrderReminder(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	// Настраиваем ожидания
	mockProducer.ExpectSendMessageAndSucceed()

	event := NewOrderEvent(
		EventTypeOrderReminder,
		42,
		7,
		"15.50",
		time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC),
	)

	if err := producer.PublishOrderReminder(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishCustomerCreated(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageAndSucceed()

	event := NewCustomerEvent(EventTypeCustomerCreated, 7, "alice@example.com")
	if err := producer.PublishCustomerCreated(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishOrderCreated(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageAndSucceed()

	event := NewOrderEvent(
		EventTypeOrderCreated,
		42,
		7,
		"999.99",
		time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC),
	)
	if err := producer.PublishOrderCreated(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	// Настраиваем ожидание ошибки
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := NewCustomerEvent(EventTypeCustomerCreated, 1, "alice@example.com")

	err := producer.PublishEvent(TopicCustomerEvents, event.Email, event)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderEvent(t *testing.T) {
	orderDate := time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)
	event := NewOrderEvent(EventTypeOrderCreated, 42, 7, "999.99", orderDate)

	if event.EventID == "" {
		t.Fatal("expected non-empty event id")
	}
	if event.EventType != EventTypeOrderCreated {
		t.Fatalf("unexpected event type: %s", event.EventType)
	}
	if event.OrderID != 42 || event.CustomerID != 7 {
		t.Fatalf("unexpected ids: order=%d customer=%d", event.OrderID, event.CustomerID)
	}
	if event.TotalAmount != "999.99" {
		t.Fatalf("unexpected total: %s", event.TotalAmount)
	}
	if !event.OrderDate.Equal(orderDate) {
		t.Fatalf("unexpected order date: %s", event.OrderDate)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("expected non-zero timestamp")
	}
}
