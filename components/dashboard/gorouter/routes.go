package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-travelboard/components/auth"
	"github.com/goliatone/go-travelboard/components/catalog"
	"github.com/goliatone/go-travelboard/components/dashboard"
	"github.com/goliatone/go-travelboard/components/dashboard/commands"
	"github.com/goliatone/go-travelboard/components/dashboard/httpapi"
	"github.com/goliatone/go-travelboard/components/dashboard/queries"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the travel dashboard controller, APIs, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Queries        httpapi.Reader
	Booking        auth.Operation[catalog.BookingRequest, catalog.Confirmation]
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML        string
	Page        string
	Sections    string
	Reorder     string
	Drag        string
	Refresh     string
	Preferences string
	Login       string
	Bookings    string
	Payments    string
	Cities      string
	Translate   string
	WebSocket   string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/travel"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Controller.Page(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}
	if cfg.Queries != nil {
		registerQueries(group, cfg.Queries, routes)
	}
	if cfg.Booking != nil {
		registerBooking(group, cfg.Booking, routes.Bookings)
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderSectionsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Drag, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.DragSectionInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Drag(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": string(payload.Action)})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Refresh(ctx.Context(), commands.RefreshSectionsInput{}); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SavePreferencesInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Preferences(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		var payload auth.Credentials
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Login(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "signed_in"})
	}))
}

func registerQueries[T any](r router.Router[T], reader httpapi.Reader, routes RouteConfig) {
	r.Get(routes.Sections, router.WrapHandler(func(ctx router.Context) error {
		result, err := reader.Sections(ctx.Context())
		return respond(ctx, result, err)
	}))

	r.Get(routes.Bookings, router.WrapHandler(func(ctx router.Context) error {
		page, err := reader.Bookings(ctx.Context(), httpapi.ParseBookingsInput(queryGetter(ctx)))
		return respond(ctx, page, err)
	}))

	r.Get(routes.Payments, router.WrapHandler(func(ctx router.Context) error {
		result, err := reader.Payments(ctx.Context(), httpapi.ParsePaymentsInput(queryGetter(ctx)))
		return respond(ctx, result, err)
	}))

	r.Get(routes.Cities, router.WrapHandler(func(ctx router.Context) error {
		slice, err := reader.Cities(ctx.Context(), httpapi.ParseCitiesInput(queryGetter(ctx)))
		return respond(ctx, slice, err)
	}))

	r.Get(routes.Translate, router.WrapHandler(func(ctx router.Context) error {
		result, err := reader.Translate(ctx.Context(), queries.TranslateInput{
			Locale: ctx.Param("locale"),
			Key:    ctx.Query("key"),
		})
		return respond(ctx, result, err)
	}))
}

func registerBooking[T any](r router.Router[T], op auth.Operation[catalog.BookingRequest, catalog.Confirmation], path string) {
	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		var payload catalog.BookingRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		confirmation, err := op.Submit(ctx.Context(), payload).Wait(ctx.Context())
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, confirmation)
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if v, ok := ctx.Locals("theme").(string); ok {
		viewer.Theme = v
	} else {
		viewer.Theme = strings.ToLower(strings.TrimSpace(ctx.Query("theme")))
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func queryGetter(ctx router.Context) func(string) string {
	return func(name string) string {
		return ctx.Query(name)
	}
}

func respond(ctx router.Context, payload any, err error) error {
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, payload)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Page == "" {
		routes.Page = "/dashboard/_page"
	}
	if routes.Sections == "" {
		routes.Sections = "/dashboard/sections"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/dashboard/sections/reorder"
	}
	if routes.Drag == "" {
		routes.Drag = "/dashboard/sections/drag"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dashboard/sections/refresh"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/preferences"
	}
	if routes.Login == "" {
		routes.Login = "/auth/login"
	}
	if routes.Bookings == "" {
		routes.Bookings = "/bookings"
	}
	if routes.Payments == "" {
		routes.Payments = "/payments"
	}
	if routes.Cities == "" {
		routes.Cities = "/cities"
	}
	if routes.Translate == "" {
		routes.Translate = "/i18n/:locale"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
