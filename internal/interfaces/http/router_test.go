package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-catalog/internal/application/auth"
	"github.com/jhoicas/wms-catalog/internal/application/catalog"
	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/usecase"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/kafka"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/media"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/memory"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/wms-catalog/internal/interfaces/http"
)

type api struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *api {
	t.Helper()
	s := memory.NewStore()
	ms, err := media.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	m := metrics.New("test")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.Users(), auth.SuperAdmin{Login: "root", Password: "toor"},
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, Issuer: testIssuer}),
		UserUC:      usecase.NewUserUseCase(s.Users()),
		CategoryUC:  usecase.NewCategoryUseCase(s.Categories()),
		WarehouseUC: usecase.NewWarehouseUseCase(s.Warehouses()),
		ProductUC: usecase.NewProductUseCase(s.TxRunner(), s.Products(), s.Categories(), s.Warehouses(),
			ms, m.Publisher(kafka.NoopPublisher{})),
		StockUC:   usecase.NewStockUseCase(s.Stock(), s.Products(), s.Warehouses()),
		Query:     catalog.NewQueryService(s.Products(), s.Stock(), s.Categories(), s.Warehouses()),
		Metrics:   m,
		JWTSecret: testJWTSecret,
		Timeout:   2 * time.Second,
	})
	return &api{t: t, app: app}
}

func (a *api) do(method, path, token string, body any) (int, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func (a *api) login(login, password string) string {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: login, Password: password})
	require.Equal(a.t, http.StatusOK, status, string(body))
	var out dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(body, &out))
	return out.Token
}

func (a *api) client(username string) string {
	a.t.Helper()
	admin := a.login("root", "toor")
	status, body := a.do(http.MethodPost, "/api/users", admin, dto.CreateUserRequest{Username: username, Password: "secreto123"})
	require.Equal(a.t, http.StatusCreated, status, string(body))
	return a.login(username, "secreto123")
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestRouter_FlujoCatalogo(t *testing.T) {
	a := newAPI(t)
	tok := a.client("ana")

	status, body := a.do(http.MethodPost, "/api/categories", tok, dto.CreateCategoryRequest{Name: "Herramientas"})
	require.Equal(t, http.StatusCreated, status, string(body))
	cat := decode[dto.CategoryResponse](t, body)

	status, body = a.do(http.MethodPost, "/api/warehouses", tok, dto.CreateWarehouseRequest{Name: "Central", Code: "W1", Address: "Calle 1"})
	require.Equal(t, http.StatusCreated, status, string(body))
	wh := decode[dto.WarehouseResponse](t, body)

	status, body = a.do(http.MethodPost, "/api/products", tok, map[string]any{
		"category": cat.ID, "name": "Martillo", "price": "10.5", "country": "CO", "unit": "pcs",
		"characteristics": `{"color":"rojo"}`,
		"warehouse":       wh.ID, "quantity": 6,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	p := decode[dto.ProductResponse](t, body)
	assert.Equal(t, map[string]string{"color": "rojo"}, p.Characteristics)

	status, body = a.do(http.MethodGet, "/api/products?warehouse="+wh.ID, tok, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	list := decode[dto.ProductListResponse](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(6), list.Items[0].Quantity)
	assert.Equal(t, "Herramientas", list.Items[0].CategoryName)

	status, body = a.do(http.MethodPut, "/api/stock/"+p.ID+"/"+wh.ID, tok, map[string]any{"quantity": 2})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = a.do(http.MethodGet, "/api/categories/tree?warehouse="+wh.ID, tok, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	tree := decode[dto.CategoryTreeResponse](t, body)
	require.Len(t, tree.Roots, 1)
	require.Len(t, tree.Roots[0].Products, 1)
	assert.Equal(t, int64(2), tree.Roots[0].Products[0].Quantity)

	status, _ = a.do(http.MethodDelete, "/api/products/"+p.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = a.do(http.MethodGet, "/api/stock/"+p.ID+"/"+wh.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_AislamientoEntreOwners(t *testing.T) {
	a := newAPI(t)
	ana := a.client("ana")
	beto := a.client("beto")

	_, body := a.do(http.MethodPost, "/api/warehouses", ana, dto.CreateWarehouseRequest{Name: "A", Code: "W1", Address: "x"})
	wh := decode[dto.WarehouseResponse](t, body)

	status, body := a.do(http.MethodGet, "/api/warehouses/"+wh.ID, beto, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), "NOT_FOUND")

	status, _ = a.do(http.MethodPost, "/api/warehouses", beto, dto.CreateWarehouseRequest{Name: "B", Code: "W1", Address: "x"})
	assert.Equal(t, http.StatusCreated, status, "mismo código bajo otro owner")
}

func TestRouter_MapeoDeErrores(t *testing.T) {
	a := newAPI(t)
	tok := a.client("ana")

	status, body := a.do(http.MethodPost, "/api/warehouses", tok, dto.CreateWarehouseRequest{Name: "A", Code: "W1", Address: "x"})
	require.Equal(t, http.StatusCreated, status, string(body))
	status, body = a.do(http.MethodPost, "/api/warehouses", tok, dto.CreateWarehouseRequest{Name: "A2", Code: "W1", Address: "x"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "CONFLICT")

	status, body = a.do(http.MethodPost, "/api/categories", tok, dto.CreateCategoryRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "VALIDATION")

	status, _ = a.do(http.MethodPost, "/api/products", tok, map[string]any{"characteristics": "{roto"})
	assert.Equal(t, http.StatusBadRequest, status, "JSON de características mal formado")

	status, _ = a.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = a.do(http.MethodGet, "/api/users", tok, nil)
	assert.Equal(t, http.StatusForbidden, status, "cliente no administra usuarios")

	status, _ = a.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: "ana", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_CrearProductoMultipart(t *testing.T) {
	a := newAPI(t)
	tok := a.client("ana")
	_, body := a.do(http.MethodPost, "/api/categories", tok, dto.CreateCategoryRequest{Name: "Fotos"})
	cat := decode[dto.CategoryResponse](t, body)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("data", `{"category":"`+cat.ID+`","name":"Cámara","price":"1","country":"CO","unit":"pcs"}`))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photos"; filename="frente.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(out))

	p := decode[dto.ProductResponse](t, out)
	require.Len(t, p.Photos, 1)
	assert.True(t, strings.HasPrefix(p.Photos[0], "/media/"))
	assert.True(t, strings.HasSuffix(p.Photos[0], ".jpg"))
}

func TestRouter_HealthYMetrics(t *testing.T) {
	a := newAPI(t)
	status, _ := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := a.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "test_http_requests_total")
}
