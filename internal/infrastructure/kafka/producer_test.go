package kafka

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_Writer(t *testing.T) {
	p := NewProducer(&Config{
		Brokers:      " k1:9092 ",
		Topic:        "keypad-key-events",
		BatchTimeout: 5 * time.Millisecond,
		RequiredAcks: -1,
	})
	defer p.Close()

	assert.Equal(t, "keypad-key-events", p.w.Topic)
	assert.Equal(t, "k1:9092", p.w.Addr.String())
	assert.Equal(t, 5*time.Millisecond, p.w.BatchTimeout)
	assert.Equal(t, kafka.RequireAll, p.w.RequiredAcks)
	_, isHash := p.w.Balancer.(*kafka.Hash)
	require.True(t, isHash, "события одной сессии должны идти в одну партицию")
}
