package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
)

type stubPublisher struct{ err error }

func (s stubPublisher) Publish(context.Context, dto.ProductEvent) error { return s.err }

func TestPublisher_CuentaPorResultado(t *testing.T) {
	m := New("test")
	ok := m.Publisher(stubPublisher{})
	bad := m.Publisher(stubPublisher{err: errors.New("caído")})

	assert.NoError(t, ok.Publish(context.Background(), dto.ProductEvent{Type: dto.EventProductCreated}))
	assert.NoError(t, ok.Publish(context.Background(), dto.ProductEvent{Type: dto.EventProductCreated}))
	assert.Error(t, bad.Publish(context.Background(), dto.ProductEvent{Type: dto.EventProductDeleted}))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(dto.EventProductCreated, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(dto.EventProductDeleted, "error")))
}

func TestNew_RegistrosIndependientes(t *testing.T) {
	a, b := New("test"), New("test")
	a.EventsPublished.WithLabelValues("x", "ok").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EventsPublished.WithLabelValues("x", "ok")))
}
