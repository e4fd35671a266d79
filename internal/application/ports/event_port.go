package ports

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
)

// EventPublisher publica eventos del catálogo (Kafka u otro broker).
// Un fallo al publicar no debe revertir la escritura que lo originó.
type EventPublisher interface {
	Publish(ctx context.Context, event dto.ProductEvent) error
}
