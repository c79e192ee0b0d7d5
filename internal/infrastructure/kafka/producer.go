package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"keypadCalc/internal/ports"
)

var _ ports.IProducer = (*Producer)(nil)

// Producer публикует события нажатий. Ключ сообщения — id сессии: хеш-балансировщик кладёт
// события одной сессии в одну партицию, и консьюмер видит их в порядке нажатий.
type Producer struct {
	w     *kafka.Writer
	topic string
}

// NewProducer создаёт продюсера по конфигу. После использования вызови Close().
func NewProducer(cfg *Config) *Producer {
	return New(cfg).Producer()
}

func (c *Client) writer() *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.cfg.brokersSlice()...),
		Topic:                  c.cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           c.cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(c.cfg.RequiredAcks),
		AllowAutoTopicCreation: true,
	}
}

// Send отправляет одно сообщение и ждёт подтверждения.
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return fmt.Errorf("kafka write %s: %w", p.topic, err)
	}
	return nil
}

// Close дожидается отправки буфера и закрывает соединения.
func (p *Producer) Close() error {
	return p.w.Close()
}
