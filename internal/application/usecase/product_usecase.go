package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/ports"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

// publishTimeout tope de la publicación de eventos, independiente del timeout del request.
const publishTimeout = 2 * time.Second

// AllWarehouses valor del selector de bodega que significa "sin bodega concreta".
const AllWarehouses = "all"

// ProductUseCase casos de uso de la definición de productos. La cantidad vive en Stock;
// solo Create puede escribir stock (fila inicial) y Update nunca lo toca.
type ProductUseCase struct {
	tx            ports.CatalogTxRunner
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	warehouseRepo repository.WarehouseRepository
	media         ports.MediaStore
	events        ports.EventPublisher
}

// NewProductUseCase construye el caso de uso. media y events pueden ser nil.
func NewProductUseCase(
	tx ports.CatalogTxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	warehouseRepo repository.WarehouseRepository,
	media ports.MediaStore,
	events ports.EventPublisher,
) *ProductUseCase {
	return &ProductUseCase{
		tx:            tx,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		warehouseRepo: warehouseRepo,
		media:         media,
		events:        events,
	}
}

// NormalizeWarehouseID convierte "all" (o vacío) en "" = sin bodega.
func NormalizeWarehouseID(id string) string {
	id = strings.TrimSpace(id)
	if id == AllWarehouses {
		return ""
	}
	return id
}

// Create crea el producto y, si se eligió bodega, su fila de stock inicial en la misma transacción.
// Las fotos se suben antes de escribir; sus URLs quedan en el orden recibido.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.checkCategory(ctx, ownerID, in.CategoryID); err != nil {
		return nil, err
	}
	warehouseID := NormalizeWarehouseID(in.WarehouseID)
	quantity, minQuantity := derefQty(in.Quantity), derefQty(in.MinQuantity)
	if quantity < 0 || minQuantity < 0 {
		return nil, fmt.Errorf("%w: quantity y min_quantity no pueden ser negativos", domain.ErrInvalidInput)
	}
	if warehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(ctx, ownerID, warehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("%w: bodega", domain.ErrNotFound)
		}
	}
	uploads := nonEmptyUploads(in.Uploads)
	if len(uploads) > entity.MaxPhotos {
		return nil, fmt.Errorf("%w: máximo %d fotos", domain.ErrInvalidInput, entity.MaxPhotos)
	}

	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		OwnerID:          ownerID,
		CategoryID:       in.CategoryID,
		Name:             strings.TrimSpace(in.Name),
		Photos:           []string{},
		Description:      in.Description,
		Article:          in.Article,
		Code:             in.Code,
		ExternalCode:     in.ExternalCode,
		Price:            in.Price,
		DiscountPrice:    in.DiscountPrice,
		IsDiscountActive: in.IsDiscountActive,
		Characteristics:  in.Characteristics.ToMap(),
		Country:          in.Country,
		Unit:             in.Unit,
		Barcodes:         toBarcodes(in.Barcodes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	urls, err := uc.upload(ctx, uploads)
	if err != nil {
		return nil, err
	}
	product.Photos = append(product.Photos, urls...)

	err = uc.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, stockRepo repository.StockRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if warehouseID == "" {
			return nil
		}
		return stockRepo.Create(ctx, &entity.Stock{
			ID:          uuid.New().String(),
			OwnerID:     ownerID,
			ProductID:   product.ID,
			WarehouseID: warehouseID,
			Quantity:    quantity,
			MinQuantity: minQuantity,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, dto.ProductEvent{Type: dto.EventProductCreated, OwnerID: ownerID, ProductID: product.ID, WarehouseID: warehouseID, OccurredAt: now})
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del owner. Otro owner o inexistente: ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ProductResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.productRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza la definición del producto. Las fotos nuevas se añaden al final (máx. 10).
// No modifica Stock: los ajustes de cantidad van por StockUseCase.
func (uc *ProductUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.productRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		if err := uc.checkCategory(ctx, ownerID, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	applyProductPatch(product, in)
	uploads := nonEmptyUploads(in.Uploads)
	if len(product.Photos)+len(uploads) > entity.MaxPhotos {
		return nil, fmt.Errorf("%w: máximo %d fotos", domain.ErrInvalidInput, entity.MaxPhotos)
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	urls, err := uc.upload(ctx, uploads)
	if err != nil {
		return nil, err
	}
	product.Photos = append(product.Photos, urls...)
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.publish(ctx, dto.ProductEvent{Type: dto.EventProductUpdated, OwnerID: ownerID, ProductID: product.ID, OccurredAt: product.UpdatedAt})
	return toProductResponse(product), nil
}

// Delete elimina el producto y todas sus filas de stock del owner.
func (uc *ProductUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	var removed int64
	err := uc.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, stockRepo repository.StockRepository) error {
		ok, err := productRepo.Delete(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		removed, err = stockRepo.DeleteByProduct(ctx, ownerID, id)
		return err
	})
	if err != nil {
		return err
	}
	log.Debug().Str("product_id", id).Int64("stock_rows", removed).Msg("producto eliminado")
	uc.publish(ctx, dto.ProductEvent{Type: dto.EventProductDeleted, OwnerID: ownerID, ProductID: id, OccurredAt: time.Now()})
	return nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, ownerID, categoryID string) error {
	if strings.TrimSpace(categoryID) == "" {
		return fmt.Errorf("%w: category es requerida", domain.ErrInvalidInput)
	}
	category, err := uc.categoryRepo.GetByID(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: categoría", domain.ErrNotFound)
	}
	return nil
}

func (uc *ProductUseCase) upload(ctx context.Context, uploads []dto.PhotoUpload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	if uc.media == nil {
		return nil, fmt.Errorf("%w: almacenamiento de fotos no configurado", domain.ErrInvalidInput)
	}
	urls := make([]string, 0, len(uploads))
	for _, up := range uploads {
		if !strings.HasPrefix(up.ContentType, "image/") {
			return nil, fmt.Errorf("%w: %q no es una imagen", domain.ErrInvalidInput, up.Filename)
		}
		url, err := uc.media.Store(ctx, up.Filename, up.ContentType, up.Data)
		if err != nil {
			return nil, fmt.Errorf("subir foto: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (uc *ProductUseCase) publish(ctx context.Context, ev dto.ProductEvent) {
	if uc.events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := uc.events.Publish(pctx, ev); err != nil {
		log.Warn().Err(err).Str("event", ev.Type).Str("product_id", ev.ProductID).Msg("no se pudo publicar evento")
	}
}

// nonEmptyUploads descarta partes vacías (inputs de archivo sin seleccionar en multipart).
func nonEmptyUploads(uploads []dto.PhotoUpload) []dto.PhotoUpload {
	out := make([]dto.PhotoUpload, 0, len(uploads))
	for _, up := range uploads {
		if len(up.Data) > 0 {
			out = append(out, up)
		}
	}
	return out
}

func applyProductPatch(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Article != nil {
		p.Article = *in.Article
	}
	if in.Code != nil {
		p.Code = *in.Code
	}
	if in.ExternalCode != nil {
		p.ExternalCode = *in.ExternalCode
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		p.DiscountPrice = in.DiscountPrice
	}
	if in.IsDiscountActive != nil {
		p.IsDiscountActive = *in.IsDiscountActive
	}
	if in.Characteristics != nil {
		p.Characteristics = in.Characteristics.ToMap()
	}
	if in.Country != nil {
		p.Country = *in.Country
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.Barcodes != nil {
		p.Barcodes = toBarcodes(*in.Barcodes)
	}
}

func derefQty(q *int64) int64 {
	if q == nil {
		return 0
	}
	return *q
}

func toBarcodes(in []dto.BarcodeDTO) []entity.Barcode {
	out := make([]entity.Barcode, 0, len(in))
	for _, b := range in {
		out = append(out, entity.Barcode{Type: b.Type, Value: b.Value})
	}
	return out
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse { return toProductResponse(p) }

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	chars := p.Characteristics
	if chars == nil {
		chars = map[string]string{}
	}
	barcodes := make([]dto.BarcodeDTO, 0, len(p.Barcodes))
	for _, b := range p.Barcodes {
		barcodes = append(barcodes, dto.BarcodeDTO{Type: b.Type, Value: b.Value})
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		CategoryID:       p.CategoryID,
		Name:             p.Name,
		Photos:           photos,
		Description:      p.Description,
		Article:          p.Article,
		Code:             p.Code,
		ExternalCode:     p.ExternalCode,
		Price:            p.Price,
		DiscountPrice:    p.DiscountPrice,
		IsDiscountActive: p.IsDiscountActive,
		Characteristics:  chars,
		Country:          p.Country,
		Unit:             p.Unit,
		Barcodes:         barcodes,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
