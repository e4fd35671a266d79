package http

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-catalog/internal/application/catalog"
	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/usecase"
	"github.com/jhoicas/wms-catalog/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	query *catalog.QueryService
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, query *catalog.QueryService) *ProductHandler {
	return &ProductHandler{uc: uc, query: query}
}

// Create godoc
// @Summary      Crear producto
// @Description  JSON, o multipart con el JSON en el campo "data" y las fotos en "photos".
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductRequest
	uploads, err := parseProductBody(c, &in)
	if err != nil {
		return writeError(c, err)
	}
	in.Uploads = append(in.Uploads, uploads...)
	out, err := h.uc.Create(c.UserContext(), ownerID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), ownerID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos vistos desde una bodega
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        warehouse  query  string  false  "ID de bodega o all"
// @Param        category   query  string  false  "ID de categoría"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	out, err := h.query.ListForWarehouse(c.UserContext(), ownerID, c.Query("warehouse"), c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  No modifica stock. Las fotos subidas se añaden al final.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateProductRequest
	uploads, err := parseProductBody(c, &in)
	if err != nil {
		return writeError(c, err)
	}
	in.Uploads = append(in.Uploads, uploads...)
	out, err := h.uc.Update(c.UserContext(), ownerID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto y su stock
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), ownerID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductBody decodifica JSON o multipart (campo "data" + archivos "photos").
func parseProductBody(c *fiber.Ctx, dst any) ([]dto.PhotoUpload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := json.Unmarshal(c.Body(), dst); err != nil {
			return nil, fmt.Errorf("%w: cuerpo inválido: %v", domain.ErrInvalidInput, err)
		}
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: multipart inválido", domain.ErrInvalidInput)
	}
	if data := form.Value["data"]; len(data) > 0 && data[0] != "" {
		if err := json.Unmarshal([]byte(data[0]), dst); err != nil {
			return nil, fmt.Errorf("%w: campo data inválido: %v", domain.ErrInvalidInput, err)
		}
	}
	var uploads []dto.PhotoUpload
	for _, fh := range form.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", fh.Filename, err)
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, dto.PhotoUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Data:        b,
		})
	}
	return uploads, nil
}
