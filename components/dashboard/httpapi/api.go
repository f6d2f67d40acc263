package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-travelboard/components/auth"
	"github.com/goliatone/go-travelboard/components/catalog"
	"github.com/goliatone/go-travelboard/components/dashboard"
	"github.com/goliatone/go-travelboard/components/dashboard/commands"
	"github.com/goliatone/go-travelboard/components/dashboard/queries"
	"github.com/goliatone/go-travelboard/components/listview"
	"github.com/goliatone/go-travelboard/components/locale"
)

// ErrUnavailable is returned when an endpoint has no backing command or query.
var ErrUnavailable = errors.New("httpapi: endpoint not configured")

// Executor runs the write side of the dashboard API.
type Executor interface {
	Reorder(ctx context.Context, input commands.ReorderSectionsInput) error
	Drag(ctx context.Context, input commands.DragSectionInput) error
	Refresh(ctx context.Context, input commands.RefreshSectionsInput) error
	Preferences(ctx context.Context, input commands.SavePreferencesInput) error
	Login(ctx context.Context, creds auth.Credentials) error
}

// Reader runs the read side of the dashboard API.
type Reader interface {
	Sections(ctx context.Context) (queries.SectionOrderResult, error)
	Bookings(ctx context.Context, input queries.BookingsInput) (listview.Page[catalog.Booking], error)
	Payments(ctx context.Context, input queries.PaymentsInput) (queries.PaymentsResult, error)
	Cities(ctx context.Context, input queries.CitiesInput) (listview.Slice[catalog.City], error)
	Translate(ctx context.Context, input queries.TranslateInput) (queries.TranslateResult, error)
}

// CommandExecutor adapts go-command commanders to Executor.
type CommandExecutor struct {
	ReorderCommander     gocommand.Commander[commands.ReorderSectionsInput]
	DragCommander        gocommand.Commander[commands.DragSectionInput]
	RefreshCommander     gocommand.Commander[commands.RefreshSectionsInput]
	PreferencesCommander gocommand.Commander[commands.SavePreferencesInput]
	LoginCommander       gocommand.Commander[auth.Credentials]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderSectionsInput) error {
	return execute(ctx, e.ReorderCommander, input)
}

func (e *CommandExecutor) Drag(ctx context.Context, input commands.DragSectionInput) error {
	return execute(ctx, e.DragCommander, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshSectionsInput) error {
	return execute(ctx, e.RefreshCommander, input)
}

func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SavePreferencesInput) error {
	return execute(ctx, e.PreferencesCommander, input)
}

func (e *CommandExecutor) Login(ctx context.Context, creds auth.Credentials) error {
	return execute(ctx, e.LoginCommander, creds)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return ErrUnavailable
	}
	return cmd.Execute(ctx, msg)
}

// QueryReader adapts go-command queriers to Reader.
type QueryReader struct {
	SectionsQuerier  gocommand.Querier[queries.SectionOrderInput, queries.SectionOrderResult]
	BookingsQuerier  gocommand.Querier[queries.BookingsInput, listview.Page[catalog.Booking]]
	PaymentsQuerier  gocommand.Querier[queries.PaymentsInput, queries.PaymentsResult]
	CitiesQuerier    gocommand.Querier[queries.CitiesInput, listview.Slice[catalog.City]]
	TranslateQuerier gocommand.Querier[queries.TranslateInput, queries.TranslateResult]
}

var _ Reader = (*QueryReader)(nil)

func (q *QueryReader) Sections(ctx context.Context) (queries.SectionOrderResult, error) {
	return query(ctx, q.SectionsQuerier, queries.SectionOrderInput{})
}

func (q *QueryReader) Bookings(ctx context.Context, input queries.BookingsInput) (listview.Page[catalog.Booking], error) {
	return query(ctx, q.BookingsQuerier, input)
}

func (q *QueryReader) Payments(ctx context.Context, input queries.PaymentsInput) (queries.PaymentsResult, error) {
	return query(ctx, q.PaymentsQuerier, input)
}

func (q *QueryReader) Cities(ctx context.Context, input queries.CitiesInput) (listview.Slice[catalog.City], error) {
	return query(ctx, q.CitiesQuerier, input)
}

func (q *QueryReader) Translate(ctx context.Context, input queries.TranslateInput) (queries.TranslateResult, error) {
	return query(ctx, q.TranslateQuerier, input)
}

func query[T, R any](ctx context.Context, q gocommand.Querier[T, R], msg T) (R, error) {
	if q == nil {
		var zero R
		return zero, ErrUnavailable
	}
	return q.Query(ctx, msg)
}

// ParseBookingsInput reads the bookings filter bar from request parameters.
func ParseBookingsInput(get func(string) string) queries.BookingsInput {
	return queries.BookingsInput{
		Filter: catalog.BookingFilter{Status: get("status"), Query: get("q")},
		Page:   atoi(get("page")),
	}
}

// ParsePaymentsInput reads the payments filter bar from request parameters.
func ParsePaymentsInput(get func(string) string) queries.PaymentsInput {
	return queries.PaymentsInput{
		Filter: catalog.PaymentFilter{
			Status: get("status"),
			From:   get("from"),
			To:     get("to"),
			Query:  get("q"),
		},
		Page: atoi(get("page")),
	}
}

// ParseCitiesInput reads the cities search bar from request parameters.
func ParseCitiesInput(get func(string) string) queries.CitiesInput {
	return queries.CitiesInput{
		Filter: catalog.CityFilter{Query: get("q"), Region: get("region")},
		Loads:  atoi(get("loads")),
	}
}

func atoi(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownSection),
		errors.Is(err, commands.ErrUnknownDragAction),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, catalog.ErrInvalidBooking):
		return http.StatusBadRequest
	case errors.Is(err, locale.ErrMissingKey):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusNotImplemented
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	API     Executor
	Queries Reader
	Booking auth.Operation[catalog.BookingRequest, catalog.Confirmation]
	// Broadcast enables the section event streams when set.
	Broadcast *dashboard.BroadcastHook
}

// Register mounts every handler on mux under base using method patterns.
func (h *Handlers) Register(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+base+"/dashboard/sections", h.HandleSections)
	mux.HandleFunc("POST "+base+"/dashboard/sections/reorder", h.HandleReorderSections)
	mux.HandleFunc("POST "+base+"/dashboard/sections/drag", h.HandleDragSection)
	mux.HandleFunc("POST "+base+"/dashboard/sections/refresh", h.HandleRefreshSections)
	mux.HandleFunc("POST "+base+"/preferences", h.HandleSavePreferences)
	mux.HandleFunc("POST "+base+"/auth/login", h.HandleLogin)
	mux.HandleFunc("GET "+base+"/bookings", h.HandleBookings)
	mux.HandleFunc("POST "+base+"/bookings", h.HandleSubmitBooking)
	mux.HandleFunc("GET "+base+"/payments", h.HandlePayments)
	mux.HandleFunc("GET "+base+"/cities", h.HandleCities)
	mux.HandleFunc("GET "+base+"/i18n/{locale}", h.HandleTranslate)
	if h.Broadcast != nil {
		mux.HandleFunc("GET "+base+"/dashboard/events", h.Broadcast.ServeSSE)
		mux.HandleFunc("GET "+base+"/dashboard/ws", h.Broadcast.ServeWebSocket)
	}
}

func (h *Handlers) HandleSections(w http.ResponseWriter, r *http.Request) {
	if h.Queries == nil {
		writeError(w, ErrUnavailable)
		return
	}
	result, err := h.Queries.Sections(r.Context())
	respond(w, http.StatusOK, result, err)
}

func (h *Handlers) HandleReorderSections(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderSectionsInput
	if !decode(w, r, &payload) {
		return
	}
	h.exec(w, r, func(api Executor) error { return api.Reorder(r.Context(), payload) }, http.StatusOK)
}

func (h *Handlers) HandleDragSection(w http.ResponseWriter, r *http.Request) {
	var payload commands.DragSectionInput
	if !decode(w, r, &payload) {
		return
	}
	h.exec(w, r, func(api Executor) error { return api.Drag(r.Context(), payload) }, http.StatusOK)
}

func (h *Handlers) HandleRefreshSections(w http.ResponseWriter, r *http.Request) {
	h.exec(w, r, func(api Executor) error {
		return api.Refresh(r.Context(), commands.RefreshSectionsInput{})
	}, http.StatusAccepted)
}

func (h *Handlers) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload commands.SavePreferencesInput
	if !decode(w, r, &payload) {
		return
	}
	h.exec(w, r, func(api Executor) error { return api.Preferences(r.Context(), payload) }, http.StatusOK)
}

func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload auth.Credentials
	if !decode(w, r, &payload) {
		return
	}
	h.exec(w, r, func(api Executor) error { return api.Login(r.Context(), payload) }, http.StatusOK)
}

func (h *Handlers) HandleBookings(w http.ResponseWriter, r *http.Request) {
	if h.Queries == nil {
		writeError(w, ErrUnavailable)
		return
	}
	page, err := h.Queries.Bookings(r.Context(), ParseBookingsInput(r.URL.Query().Get))
	respond(w, http.StatusOK, page, err)
}

func (h *Handlers) HandlePayments(w http.ResponseWriter, r *http.Request) {
	if h.Queries == nil {
		writeError(w, ErrUnavailable)
		return
	}
	result, err := h.Queries.Payments(r.Context(), ParsePaymentsInput(r.URL.Query().Get))
	respond(w, http.StatusOK, result, err)
}

func (h *Handlers) HandleCities(w http.ResponseWriter, r *http.Request) {
	if h.Queries == nil {
		writeError(w, ErrUnavailable)
		return
	}
	slice, err := h.Queries.Cities(r.Context(), ParseCitiesInput(r.URL.Query().Get))
	respond(w, http.StatusOK, slice, err)
}

func (h *Handlers) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	if h.Queries == nil {
		writeError(w, ErrUnavailable)
		return
	}
	result, err := h.Queries.Translate(r.Context(), queries.TranslateInput{
		Locale: r.PathValue("locale"),
		Key:    r.URL.Query().Get("key"),
	})
	respond(w, http.StatusOK, result, err)
}

// HandleSubmitBooking waits for the booking operation to resolve. A client
// disconnect abandons the wait.
func (h *Handlers) HandleSubmitBooking(w http.ResponseWriter, r *http.Request) {
	if h.Booking == nil {
		writeError(w, ErrUnavailable)
		return
	}
	var payload catalog.BookingRequest
	if !decode(w, r, &payload) {
		return
	}
	confirmation, err := h.Booking.Submit(r.Context(), payload).Wait(r.Context())
	respond(w, http.StatusCreated, confirmation, err)
}

func (h *Handlers) exec(w http.ResponseWriter, _ *http.Request, run func(Executor) error, status int) {
	if h.API == nil {
		writeError(w, ErrUnavailable)
		return
	}
	if err := run(h.API); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(status)
}

func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, status int, payload any, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusFor(err))
}
