package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/wms-catalog/docs"
	"github.com/jhoicas/wms-catalog/internal/application/auth"
	"github.com/jhoicas/wms-catalog/internal/application/catalog"
	"github.com/jhoicas/wms-catalog/internal/application/ports"
	"github.com/jhoicas/wms-catalog/internal/application/usecase"
	"github.com/jhoicas/wms-catalog/internal/bootstrap"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/kafka"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/media"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/metrics"
	httpRouter "github.com/jhoicas/wms-catalog/internal/interfaces/http"
	"github.com/jhoicas/wms-catalog/pkg/config"
	"github.com/jhoicas/wms-catalog/pkg/logger"
)

type closablePublisher interface {
	ports.EventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	mediaStore, err := media.NewLocalStore(cfg.Media.Dir, cfg.Media.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("media store")
	}

	var publisher closablePublisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicando eventos en kafka")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar publisher")
		}
	}()

	m := metrics.New(cfg.Metrics.Prefix)

	authUC := auth.NewAuthUseCase(store.Users,
		auth.SuperAdmin{Login: cfg.Admin.Login, Password: cfg.Admin.Password},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	userUC := usecase.NewUserUseCase(store.Users)
	categoryUC := usecase.NewCategoryUseCase(store.Categories)
	warehouseUC := usecase.NewWarehouseUseCase(store.Warehouses)
	productUC := usecase.NewProductUseCase(store.Tx, store.Products, store.Categories, store.Warehouses,
		mediaStore, m.Publisher(publisher))
	stockUC := usecase.NewStockUseCase(store.Stock, store.Products, store.Warehouses)
	query := catalog.NewQueryService(store.Products, store.Stock, store.Categories, store.Warehouses)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 << 20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "WMS Catalog API",
	}))

	if strings.HasPrefix(cfg.Media.BaseURL, "/") {
		app.Static(cfg.Media.BaseURL, mediaStore.Dir())
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		CategoryUC:  categoryUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		StockUC:     stockUC,
		Query:       query,
		Metrics:     m,
		JWTSecret:   cfg.JWT.Secret,
		Timeout:     cfg.Storage.Timeout,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
