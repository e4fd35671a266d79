package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/ports"
)

var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = NoopPublisher{}
)

// messageWriter lo que Publisher usa de *kafkago.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher publica eventos de producto en un topic; la key es el id del producto
// para que los eventos de un mismo producto queden en la misma partición.
type Publisher struct {
	w     messageWriter
	topic string
}

// NewPublisher crea el writer hacia los brokers dados.
func NewPublisher(brokers []string, topic string) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{w: w, topic: topic}
}

// Publish serializa el evento a JSON y lo escribe.
func (p *Publisher) Publish(ctx context.Context, event dto.ProductEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(event.ProductID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", p.topic, err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

// NoopPublisher se usa cuando no hay brokers configurados.
type NoopPublisher struct{}

// Publish solo registra el evento en debug.
func (NoopPublisher) Publish(_ context.Context, event dto.ProductEvent) error {
	log.Debug().Str("type", event.Type).Str("product_id", event.ProductID).Msg("evento no publicado: kafka deshabilitado")
	return nil
}

// Close no hace nada.
func (NoopPublisher) Close() error { return nil }
