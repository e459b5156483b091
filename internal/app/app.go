// Package app wires the storefront from its config.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/kv"
	"github.com/niksmo/storefront/internal/adapter/persistence"
	"github.com/niksmo/storefront/internal/adapter/render"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"golang.org/x/sync/errgroup"
)

const (
	closeTimeout       = 5 * time.Second
	staticSchemaID     = 1
	snapshotSubject    = persistence.SnapshotKey + "-value"
	eventSubjectSuffix = "-value"
)

type kvStore interface {
	port.KVStore
	io.Closer
}

type eventPublisher interface {
	port.EventPublisher
	Close()
}

type Opt func(*App)

// WithRenderer sets where the storefront draws. Defaults to render.Discard.
func WithRenderer(r port.Renderer) Opt {
	return func(app *App) {
		if r != nil {
			app.renderer = r
		}
	}
}

// WithLogOutput redirects the JSON log. Defaults to stderr.
func WithLogOutput(w io.Writer) Opt {
	return func(app *App) {
		if w != nil {
			app.logOut = w
		}
	}
}

type App struct {
	cfg      config.Config
	renderer port.Renderer
	logOut   io.Writer

	schemaID   schema.SchemaIdentifier
	catalog    catalog.Catalog
	kv         kvStore
	cartStore  persistence.CartStore
	publisher  eventPublisher
	storefront *service.Storefront
	httpServer httphandler.HTTPServer
}

// New builds every component. Whatever was opened before a failure is
// closed again.
func New(ctx context.Context, cfg config.Config, opts ...Opt) (app *App, err error) {
	const op = "app.New"

	app = &App{
		cfg:      cfg,
		renderer: render.Discard{},
		logOut:   os.Stderr,
	}
	for _, o := range opts {
		o(app)
	}

	app.initLogger()

	defer func() {
		if err != nil {
			app.Close(ctx)
			app, err = nil, fmt.Errorf("%s: %w", op, err)
		}
	}()

	if err = app.initCatalog(); err != nil {
		return
	}
	if err = app.initSchemaIdentifier(); err != nil {
		return
	}
	if err = app.initStorage(ctx); err != nil {
		return
	}
	if err = app.initPublisher(ctx); err != nil {
		return
	}
	app.initStorefront()
	app.initHTTPServer()
	return app, nil
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(app.logOut, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() error {
	if app.cfg.CatalogFile == "" {
		app.catalog = catalog.Default()
		return nil
	}

	c, err := catalog.LoadFile(app.cfg.CatalogFile)
	if err != nil {
		return err
	}
	app.catalog = c
	return nil
}

func (app *App) initSchemaIdentifier() error {
	urls := app.cfg.SchemaRegistryURLs
	if len(urls) == 0 {
		app.schemaID = schema.StaticIdentifier(staticSchemaID)
		return nil
	}

	cl, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		return err
	}
	app.schemaID = schema.NewRegistryIdentifier(cl)
	return nil
}

func (app *App) initStorage(ctx context.Context) error {
	const op = "App.initStorage"
	log := slog.With("op", op)

	s := app.cfg.Storage
	store, err := openKV(ctx, s)
	if err != nil {
		return err
	}
	app.kv = store

	var codec persistence.Codec = persistence.JSONCodec{}
	if s.Codec == config.CodecAvro {
		serde, err := schema.NewSerdeCartSnapshotV1(
			ctx,
			schema.SubjectOpt(snapshotSubject),
			schema.SchemaIdentifierOpt(app.schemaID),
		)
		if err != nil {
			return err
		}
		codec = persistence.NewAvroCodec(serde)
	}

	app.cartStore = persistence.NewCartStore(app.kv, codec)
	log.Info("cart storage is ready", "backend", s.Backend, "codec", s.Codec)
	return nil
}

func openKV(ctx context.Context, s config.Storage) (kvStore, error) {
	switch s.Backend {
	case config.BackendMemory:
		return kv.NewMemory(), nil
	case config.BackendFile:
		slog.Debug("file storage",
			"dir", s.FileDir, "quota", humanize.IBytes(uint64(max(s.FileQuotaBytes, 0))))
		return kv.NewFile(s.FileDir, kv.WithQuota(s.FileQuotaBytes))
	case config.BackendSQLite:
		return kv.OpenSQLite(s.SQLitePath)
	case config.BackendRedis:
		return kv.DialRedis(ctx, s.RedisAddr, s.RedisPassword, s.RedisDB)
	case config.BackendPostgres:
		return kv.OpenPostgres(ctx, s.PostgresDSN)
	default:
		return nil, fmt.Errorf("storage backend %q: %w", s.Backend, config.ErrInvalidConfig)
	}
}

func (app *App) initPublisher(ctx context.Context) error {
	const op = "App.initPublisher"
	log := slog.With("op", op)

	e := app.cfg.Events
	if !e.Enabled {
		app.publisher = kafka.Noop{}
		log.Debug("activity events are disabled")
		return nil
	}

	serde, err := schema.NewSerdeStorefrontEventV1(
		ctx,
		schema.SubjectOpt(e.Topic+eventSubjectSuffix),
		schema.SchemaIdentifierOpt(app.schemaID),
	)
	if err != nil {
		return err
	}

	p, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(ctx, e.SeedBrokers, e.Topic),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		return err
	}
	app.publisher = p
	log.Info("activity events are enabled", "topic", e.Topic)
	return nil
}

func (app *App) initStorefront() {
	app.storefront = service.New(
		app.catalog,
		app.cartStore,
		app.renderer,
		service.WithPublisher(app.publisher),
		service.WithCurrencySymbol(app.cfg.CurrencySymbol),
	)
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterStorefront(mux, app.storefront, app.cfg.CurrencySymbol)

	handler := httphandler.Chain(mux,
		httphandler.WithRequestID,
		httphandler.LogRequests,
		httphandler.AllowJSON,
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Storefront() *service.Storefront {
	return app.storefront
}

func (app *App) Catalog() catalog.Catalog {
	return app.catalog
}

func (app *App) CartStore() persistence.CartStore {
	return app.cartStore
}

// Serve starts the storefront and the HTTP server and blocks until ctx is
// done or the server fails.
func (app *App) Serve(ctx context.Context) error {
	app.storefront.Start(ctx)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(app.httpServer.Run)
	g.Go(func() error {
		<-gCtx.Done()
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		app.httpServer.Close(closeCtx)
		return nil
	})

	slog.Info("application is running")
	return g.Wait()
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	if app.publisher != nil {
		app.publisher.Close()
	}
	if app.kv != nil {
		if err := app.kv.Close(); err != nil {
			slog.Error("failed to close cart storage", "err", err)
		}
	}

	slog.Info("application is closed")
}
