package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	for _, brokers := range []string{"", "   "} {
		producer, err := initKafkaProducer(brokers, log.WithField("component", "test"))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", brokers, err)
		}
		if producer != nil {
			t.Fatalf("expected nil producer for %q", brokers)
		}
	}
}

func TestCloseKafka_NilProducer(t *testing.T) {
	// Не должно паниковать.
	closeKafka(nil, log.WithField("component", "test"))
}
