package ports

import "context"

// MediaStore define el puerto de salida para almacenar fotos de productos.
// El catálogo solo guarda y ordena las URLs devueltas, nunca el contenido.
type MediaStore interface {
	Store(ctx context.Context, filename, contentType string, data []byte) (url string, err error)
}
