package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{w: w, topic: "catalog.products"}
	ev := dto.ProductEvent{
		Type:       dto.EventProductCreated,
		OwnerID:    "o1",
		ProductID:  "p1",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "p1", string(w.msgs[0].Key))
	assert.Equal(t, dto.EventProductCreated, string(w.msgs[0].Headers[0].Value))

	var got dto.ProductEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, ev, got)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_ErrorDeEscritura(t *testing.T) {
	p := &Publisher{w: &fakeWriter{err: errors.New("broker caído")}, topic: "t"}
	err := p.Publish(context.Background(), dto.ProductEvent{ProductID: "p1"})
	assert.ErrorContains(t, err, "broker caído")
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), dto.ProductEvent{}))
	assert.NoError(t, NoopPublisher{}.Close())
}
