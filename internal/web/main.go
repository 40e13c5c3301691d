package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/addon"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/addon/fontpack"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/auth"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/invoice"
	fiberlogger "github.com/GoStoreInvoice/GoStoreInvoice/internal/logger/adapter/fiber"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/settings"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/admin/addons"
	invoicesettings "github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/admin/settings/invoice"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/dashboard"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/invoiceview"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/login"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/logout"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/orders"
)

// CheckAlivePath is the path of the liveness endpoint.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
	registry     *addon.Registry
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           "GoStoreInvoice",
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             templateEngine,
			PassLocalsToViews: true,
		},
	)

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// init web service
	service := &Service{
		cfg: cfg,
		db:  db,
	}
	service.alive.Store(true)

	// liveness and metrics endpoints stay outside the auth middleware
	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// basic auth middleware
	app.Use(AuthMiddleware)

	// Initialize auth service
	authService := auth.NewService(db)
	service.authService = authService

	// Add permissions to fiber.Locals middleware (after auth)
	app.Use(auth.AddPermissionsToLocals(authService))

	// settings renderer shared by the settings page and addons
	media := NewMediaResolver("/static/uploads")
	settingsRenderer := settings.NewRenderer(settings.OptionName, media)

	// addon registry with the built-in font pack
	registry, err := addon.NewRegistry(db, config.Version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize addon registry")
	}

	service.registry = registry

	fontPack := fontpack.New(settingsRenderer, media)
	registry.AddListener(fontPack)

	if err = registry.Register(fontPack.Descriptor()); err != nil {
		log.Error().Err(err).Msg("failed to register font pack addon")
	}

	if err = registry.Prune(); err != nil {
		log.Error().Err(err).Msg("failed to prune stale active addons")
	}

	// invoice generation and rendering
	generator := invoice.NewGenerator(db)

	invoiceRenderer, err := invoice.NewRenderer(db, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize invoice renderer")
	}

	// init handlers (they register their own routes with permission checks)
	if err = login.Handler.Init(app, cfg, db); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize login handler")
	}

	logout.Handler.Init(app, cfg)
	dashboard.Handler.Init(app, cfg, db, authService, registry)
	invoicesettings.Handler.Init(app, cfg, db, authService, settingsRenderer)
	addons.Handler.Init(app, cfg, db, authService, registry)
	orders.Handler.Init(app, cfg, db, authService, generator)
	invoiceview.Handler.Init(app, cfg, db, authService, invoiceRenderer)

	service.App = app

	// redirect root to dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	return service
}
