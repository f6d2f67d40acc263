// Package dashboard assembles the travel dashboard from configuration: storage,
// settings, auth, the section order service, list view queries and the page
// controller.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-travelboard/components/auth"
	"github.com/goliatone/go-travelboard/components/catalog"
	core "github.com/goliatone/go-travelboard/components/dashboard"
	"github.com/goliatone/go-travelboard/components/dashboard/commands"
	"github.com/goliatone/go-travelboard/components/dashboard/gorouter"
	"github.com/goliatone/go-travelboard/components/dashboard/httpapi"
	"github.com/goliatone/go-travelboard/components/dashboard/queries"
	"github.com/goliatone/go-travelboard/components/locale"
	"github.com/goliatone/go-travelboard/components/settings"
	"github.com/goliatone/go-travelboard/components/storage"
	"github.com/goliatone/go-travelboard/pkg/config"
	"github.com/goliatone/go-travelboard/pkg/remote"
	"github.com/goliatone/go-travelboard/pkg/telemetry"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// App holds every wired collaborator.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Catalog    *catalog.Catalog
	Locale     *locale.Catalog
	Store      storage.Store
	Sections   *core.Service
	Broadcast  *core.BroadcastHook
	Theme      *settings.ThemeService
	Language   *settings.LanguageService
	Session    *settings.SessionService
	Auth       *auth.Service
	Booking    auth.Operation[catalog.BookingRequest, catalog.Confirmation]
	Controller *core.Controller
	Executor   *httpapi.CommandExecutor
	Reader     *httpapi.QueryReader

	closers []io.Closer
}

// New wires the application and restores persisted state.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("dashboard: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Config: cfg, Logger: logger}

	var err error
	if app.Catalog, err = catalog.Default(); err != nil {
		return nil, err
	}
	if app.Locale, err = locale.Embedded(); err != nil {
		return nil, err
	}
	if err := app.openStore(ctx); err != nil {
		return nil, err
	}

	recorder := func(name string) *telemetry.ZapRecorder {
		return telemetry.NewZapRecorder(logger.Named(name))
	}

	app.Broadcast = core.NewBroadcastHook()
	app.Sections = core.NewService(core.Options{
		OrderStore:  core.NewStorageOrderStore(app.Store, core.NewJSONSchemaValidator()),
		RefreshHook: app.Broadcast,
		Telemetry:   recorder("sections"),
	})
	app.Theme = settings.NewThemeService(app.Store, recorder("settings"))
	app.Language = settings.NewLanguageService(app.Store, app.Locale, recorder("settings")).WithFallback(cfg.Locale.Default)
	app.Session = settings.NewSessionService(app.Store, recorder("settings"))

	authOpts := auth.Options{
		Session:   app.Session,
		Telemetry: recorder("auth"),
		Latency:   cfg.Latency.Auth,
	}
	app.Booking = catalog.NewBookingSubmitter(cfg.Latency.Booking)
	if cfg.Remote.BaseURL != "" {
		client, err := remote.NewHTTPClient(remote.HTTPConfig{BaseURL: cfg.Remote.BaseURL, APIKey: cfg.Remote.APIKey})
		if err != nil {
			return nil, err
		}
		authOpts.Login = client.LoginOperation()
		authOpts.Signup = client.SignupOperation()
		app.Booking = client.BookingOperation()
	}
	app.Auth = auth.NewService(authOpts)

	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("dashboard: templates: %w", err)
	}
	chartOpts := []core.SpendingChartOption{core.WithChartCache(core.NewChartCache(cfg.Server.ChartTTL))}
	if cfg.Server.ChartAssets != "" {
		chartOpts = append(chartOpts, core.WithChartAssetsHost(cfg.Server.ChartAssets))
	}
	translator := locale.Translator{Catalog: app.Locale}
	app.Controller = core.NewController(core.ControllerOptions{
		Sections:   app.Sections,
		Catalog:    app.Catalog,
		Renderer:   renderer,
		Translator: translator,
		Chart:      core.NewSpendingChart(chartOpts...),
	})

	cmdTelemetry := recorder("commands")
	app.Executor = &httpapi.CommandExecutor{
		ReorderCommander:     commands.NewReorderSectionsCommand(app.Sections, cmdTelemetry),
		DragCommander:        commands.NewDragSectionCommand(app.Sections, cmdTelemetry),
		RefreshCommander:     commands.NewRefreshSectionsCommand(app.Sections, cmdTelemetry),
		PreferencesCommander: commands.NewSavePreferencesCommand(app.Theme, app.Language, cmdTelemetry),
		LoginCommander:       commands.NewLoginCommand(app.Auth, cmdTelemetry),
	}
	app.Reader = &httpapi.QueryReader{
		SectionsQuerier:  queries.NewSectionOrderQuery(app.Sections),
		BookingsQuerier:  queries.NewBookingsQuery(app.Catalog, app.ViewOptions(catalog.DatasetBookings)),
		PaymentsQuerier:  queries.NewPaymentsQuery(app.Catalog, app.ViewOptions(catalog.DatasetTransactions)),
		CitiesQuerier:    queries.NewCitiesQuery(app.Catalog, app.ViewOptions(catalog.DatasetCities)),
		TranslateQuerier: queries.NewTranslateQuery(translator),
	}

	app.restore(ctx)
	return app, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.Storage.Driver {
	case "sqlite":
		store, err := storage.OpenSQLite(ctx, a.Config.Storage.Path)
		if err != nil {
			return err
		}
		a.Store = store
		a.closers = append(a.closers, store)
	default:
		a.Store = storage.NewMemoryStore()
	}
	return nil
}

func (a *App) restore(ctx context.Context) {
	a.Theme.Load(ctx)
	a.Language.Load(ctx)
	if profile, ok := a.Session.Load(ctx); ok {
		a.Logger.Debug("session restored", zap.String("user_id", profile.ID))
	}
	order := a.Sections.Mount(ctx)
	a.Logger.Info("dashboard mounted",
		zap.Strings("order", order.Strings()),
		zap.String("theme", string(a.Theme.Current())),
		zap.String("language", a.Language.Current()),
	)
}

// ViewOptions maps the views configuration onto the options of one dataset's
// list view.
func (a *App) ViewOptions(dataset string) catalog.ViewOptions {
	opts := catalog.ViewOptions{
		ReleaseDelay: a.Config.Views.ReleaseDelay,
		Telemetry:    telemetry.NewZapRecorder(a.Logger.Named("listview")),
	}
	switch dataset {
	case catalog.DatasetBookings:
		opts.PageSize = a.Config.Views.BookingsPageSize
	case catalog.DatasetTransactions:
		opts.PageSize = a.Config.Views.PaymentsPageSize
	case catalog.DatasetCities:
		opts.Increment = a.Config.Views.CitiesIncrement
	}
	return opts
}

// Viewer returns the stored presentation preferences.
func (a *App) Viewer() core.ViewerContext {
	viewer := core.ViewerContext{
		Locale: a.Language.Current(),
		Theme:  string(a.Theme.Current()),
	}
	if profile, ok := a.Session.Current(); ok {
		viewer.UserID = profile.ID
	}
	return viewer
}

// ViewerResolver lets ?locale= and ?theme= override the stored preferences
// for a single request.
func (a *App) ViewerResolver() gorouter.ViewerResolver {
	return func(ctx router.Context) core.ViewerContext {
		viewer := a.Viewer()
		if tag := strings.TrimSpace(ctx.Query("locale")); locale.Supported(tag) {
			viewer.Locale = locale.Normalize(tag)
		}
		if theme, ok := settings.ParseTheme(ctx.Query("theme")); ok {
			viewer.Theme = string(theme)
		}
		return viewer
	}
}

// Mount registers every route on r.
func Mount[T any](a *App, r router.Router[T]) error {
	return gorouter.Register(gorouter.Config[T]{
		Router:         r,
		Controller:     a.Controller,
		API:            a.Executor,
		Queries:        a.Reader,
		Booking:        a.Booking,
		Broadcast:      a.Broadcast,
		ViewerResolver: a.ViewerResolver(),
		BasePath:       a.Config.Server.BasePath,
	})
}

// Handler serves the JSON API, the event streams and the rendered page on a
// standard library mux, for deployments that do not run the fiber adapter.
func (a *App) Handler() http.Handler {
	base := a.Config.Server.BasePath
	if base == "" {
		base = "/travel"
	}
	mux := http.NewServeMux()
	api := &httpapi.Handlers{
		API:       a.Executor,
		Queries:   a.Reader,
		Booking:   a.Booking,
		Broadcast: a.Broadcast,
	}
	api.Register(mux, base)
	mux.HandleFunc("GET "+base+"/dashboard", func(w http.ResponseWriter, r *http.Request) {
		viewer := a.Viewer()
		if tag := r.URL.Query().Get("locale"); locale.Supported(tag) {
			viewer.Locale = locale.Normalize(tag)
		}
		if theme, ok := settings.ParseTheme(r.URL.Query().Get("theme")); ok {
			viewer.Theme = string(theme)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := a.Controller.RenderTemplate(r.Context(), viewer, w); err != nil {
			a.Logger.Error("render dashboard", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// Close releases the preference store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
