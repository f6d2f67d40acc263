package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-travelboard/components/auth"
	"github.com/goliatone/go-travelboard/components/catalog"
	core "github.com/goliatone/go-travelboard/components/dashboard"
	"github.com/goliatone/go-travelboard/components/dashboard/commands"
	"github.com/goliatone/go-travelboard/components/dashboard/queries"
	"github.com/goliatone/go-travelboard/components/listview"
	"github.com/goliatone/go-travelboard/pkg/config"
	"github.com/goliatone/go-travelboard/pkg/dashboard"
	"github.com/goliatone/go-travelboard/pkg/telemetry"
)

type globals struct {
	Config  string `short:"c" type:"path" help:"Path to travelboard.yaml (defaults to $CONFIG_PATH or ./travelboard.yaml)."`
	Storage string `help:"Override storage.driver (memory, sqlite)."`
	DB      string `name:"db" type:"path" help:"Override storage.path for the sqlite driver."`
	Format  string `short:"o" enum:"table,json,yaml" default:"table" help:"Output format for list commands."`
}

var stdout io.Writer = os.Stdout

type cli struct {
	globals

	Serve     serveCmd     `cmd:"" help:"Serve the dashboard over HTTP."`
	Bookings  bookingsCmd  `cmd:"" help:"List bookings, filtered and paginated."`
	Payments  paymentsCmd  `cmd:"" help:"List payments with the spending summary."`
	Cities    citiesCmd    `cmd:"" help:"Browse destination cities."`
	Sections  sectionsCmd  `cmd:"" help:"Inspect or change the dashboard section order."`
	Translate translateCmd `cmd:"" help:"Resolve a UI string."`
	Login     loginCmd     `cmd:"" help:"Sign in and store the session profile."`
	Env       envCmd       `cmd:"" name:"config" help:"Print configuration environment variables and effective values."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("travelctl"),
		kong.Description("Travel dashboard server and command-line views."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run(&c.globals)
	ctx.FatalIfErrorf(err)
}

func (g *globals) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.LoadFile(g.Config, true)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if g.Storage != "" {
		cfg.Storage.Driver = g.Storage
	}
	if g.DB != "" {
		cfg.Storage.Path = g.DB
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("travelctl: %w", err)
	}
	return cfg, nil
}

func (g *globals) app(ctx context.Context) (*dashboard.App, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	logger, err := telemetry.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return dashboard.New(ctx, cfg, logger)
}

type serveCmd struct {
	Addr      string `help:"Listen address (overrides server.addr)."`
	Transport string `default:"fiber" enum:"fiber,http" help:"Server implementation (fiber, http)."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	defer app.Logger.Sync() //nolint:errcheck

	addr := cmd.Addr
	if addr == "" {
		addr = app.Config.Server.Addr
	}
	app.Logger.Info("dashboard routes ready",
		zap.String("addr", addr),
		zap.String("transport", cmd.Transport),
		zap.String("html", app.Config.Server.BasePath+"/dashboard"),
		zap.String("ws", app.Config.Server.BasePath+"/dashboard/ws"),
	)
	if cmd.Transport == "http" {
		return serveHTTP(ctx, addr, app.Handler())
	}

	server := router.NewFiberAdapter()
	if err := dashboard.Mount[*fiber.App](app, server.Router()); err != nil {
		return fmt.Errorf("travelctl: register routes: %w", err)
	}
	return server.Serve(addr)
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdown)
	}
}

type bookingsCmd struct {
	Status string `default:"all" help:"Booking status (all, upcoming, completed, cancelled)."`
	Query  string `short:"q" help:"Search hotel, city or country."`
	Page   int    `default:"1" help:"Page number."`
}

func (cmd *bookingsCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	page, err := app.Reader.Bookings(ctx, queries.BookingsInput{
		Filter: catalog.BookingFilter{Status: cmd.Status, Query: cmd.Query},
		Page:   cmd.Page,
	})
	if err != nil {
		return err
	}
	if g.Format != "table" {
		return g.encode(page)
	}
	return writeTable([]string{"ID", "Hotel", "City", "Check in", "Check out", "Status", "Total"}, page.Items,
		func(b catalog.Booking) []string {
			return []string{b.ID, b.Hotel, b.City, b.CheckIn, b.CheckOut, title(string(b.Status)), b.Total}
		},
		pageFooter(page))
}

type paymentsCmd struct {
	Status string `default:"all" help:"Payment status (all, completed, pending, refunded, failed)."`
	From   string `help:"First calendar day (YYYY-MM-DD)."`
	To     string `help:"Last calendar day (YYYY-MM-DD)."`
	Query  string `short:"q" help:"Search description or reference."`
	Page   int    `default:"1" help:"Page number."`
}

func (cmd *paymentsCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	result, err := app.Reader.Payments(ctx, queries.PaymentsInput{
		Filter: catalog.PaymentFilter{Status: cmd.Status, From: cmd.From, To: cmd.To, Query: cmd.Query},
		Page:   cmd.Page,
	})
	if err != nil {
		return err
	}
	if g.Format != "table" {
		return g.encode(result)
	}
	summary := result.Summary
	footer := fmt.Sprintf("%s  spent %s  refunded %s  pending %s",
		pageFooter(result.Page),
		money(summary.Spent),
		money(summary.Refunded),
		money(summary.Pending),
	)
	return writeTable([]string{"ID", "Date", "Description", "Amount", "Status"}, result.Page.Items,
		func(t catalog.Transaction) []string {
			return []string{t.ID, t.Date, t.Description, t.Amount, title(string(t.Status))}
		},
		footer)
}

type citiesCmd struct {
	Query  string `short:"q" help:"Search city or country."`
	Region string `default:"all" help:"Region (all, Europe, Asia, Americas, Africa, Oceania)."`
	Loads  int    `help:"How many times to press \"load more\"."`
}

func (cmd *citiesCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	slice, err := app.Reader.Cities(ctx, queries.CitiesInput{
		Filter: catalog.CityFilter{Query: cmd.Query, Region: cmd.Region},
		Loads:  cmd.Loads,
	})
	if err != nil {
		return err
	}
	if g.Format != "table" {
		return g.encode(slice)
	}
	footer := fmt.Sprintf("showing %d of %d", slice.Shown, slice.Total)
	if slice.HasMore {
		footer += " (more available)"
	}
	return writeTable([]string{"ID", "City", "Country", "Region", "Hotels", "From"}, slice.Items,
		func(c catalog.City) []string {
			return []string{c.ID, c.Name, c.Country, c.Region, fmt.Sprint(c.Hotels), money(c.PriceFrom)}
		},
		footer)
}

type sectionsCmd struct {
	Show  sectionsShowCmd  `cmd:"" default:"1" help:"Print the current order."`
	Move  sectionsMoveCmd  `cmd:"" help:"Move a section onto another section's slot."`
	Reset sectionsResetCmd `cmd:"" help:"Restore the default order."`
}

type sectionsShowCmd struct{}

func (cmd *sectionsShowCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	result, err := app.Reader.Sections(ctx)
	if err != nil {
		return err
	}
	return g.printOrder(result)
}

type sectionsMoveCmd struct {
	Source string `arg:"" help:"Section to move (bookings, reviews, messages, news)."`
	Target string `arg:"" help:"Section whose slot it takes."`
}

func (cmd *sectionsMoveCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.Executor.Reorder(ctx, commands.ReorderSectionsInput{Source: cmd.Source, Target: cmd.Target}); err != nil {
		return err
	}
	if app.Config.Storage.Driver == "memory" {
		fmt.Fprintln(os.Stderr, "note: memory storage does not keep the order between runs (use --storage=sqlite)")
	}
	result, err := app.Reader.Sections(ctx)
	if err != nil {
		return err
	}
	return g.printOrder(result)
}

type sectionsResetCmd struct{}

func (cmd *sectionsResetCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	store := core.NewStorageOrderStore(app.Store, nil)
	if err := store.SaveOrder(ctx, core.DefaultSectionOrder()); err != nil {
		return err
	}
	return g.printOrder(queries.SectionOrderResult{
		Order:     core.DefaultSectionOrder().Strings(),
		Lifecycle: core.Lifecycle{Phase: core.PhaseDefault},
	})
}

func (g *globals) printOrder(result queries.SectionOrderResult) error {
	if g.Format != "table" {
		return g.encode(result)
	}
	for i, section := range result.Order {
		fmt.Fprintf(stdout, "%d. %s\n", i+1, title(section))
	}
	fmt.Fprintf(stdout, "(%s, %d change(s) this session)\n", result.Lifecycle.Phase, result.Lifecycle.Mutations)
	return nil
}

type translateCmd struct {
	Key    string `arg:"" help:"Dot path of the string (e.g. dashboard.sections.news)."`
	Locale string `short:"l" help:"Locale tag (defaults to the stored language)."`
}

func (cmd *translateCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	tag := cmd.Locale
	if tag == "" {
		tag = app.Language.Current()
	}
	result, err := app.Reader.Translate(ctx, queries.TranslateInput{Locale: tag, Key: cmd.Key})
	if err != nil {
		return err
	}
	if g.Format != "table" {
		return g.encode(result)
	}
	fmt.Fprintln(stdout, result.Value)
	return nil
}

type loginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" help:"Account password."`
}

func (cmd *loginCmd) Run(ctx context.Context, g *globals) error {
	app, err := g.app(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	profile, err := app.Auth.Login(ctx, auth.Credentials{Email: cmd.Email, Password: cmd.Password})
	if err != nil {
		if errors.Is(err, auth.ErrMissingCredentials) || errors.Is(err, auth.ErrInvalidEmail) {
			return fmt.Errorf("travelctl: %w", err)
		}
		return err
	}
	if g.Format != "table" {
		return g.encode(profile)
	}
	fmt.Fprintf(stdout, "✓ Signed in as %s <%s>\n", profile.Name, profile.Email)
	return nil
}

type envCmd struct {
	Effective bool `help:"Print the effective configuration as YAML instead of the variable list."`
}

func (cmd *envCmd) Run(_ context.Context, g *globals) error {
	if !cmd.Effective {
		usage, err := config.Usage()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, usage)
		return nil
	}
	cfg, err := g.load()
	if err != nil {
		return err
	}
	cfg.Remote.APIKey = redact(cfg.Remote.APIKey)
	return yamlEncode(stdout, cfg)
}

func (g *globals) encode(v any) error {
	if g.Format == "yaml" {
		return yamlEncode(stdout, v)
	}
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func yamlEncode(out io.Writer, v any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("travelctl: write yaml: %w", err)
	}
	return nil
}

func writeTable[T any](headers []string, rows []T, cells func(T) []string, footer string) error {
	tw := tabwriter.NewWriter(stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(cells(row), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if footer != "" {
		fmt.Fprintln(stdout, footer)
	}
	return nil
}

func pageFooter[T any](page listview.Page[T]) string {
	return fmt.Sprintf("page %d/%d (%d results)", page.Number, page.TotalPages, page.Total)
}

func title(value string) string {
	return strcase.ToCase(value, strcase.TitleCase, ' ')
}

func money(v float64) string {
	return strings.TrimPrefix(catalog.FormatAmount(v), "+")
}

func redact(value string) string {
	if value == "" {
		return ""
	}
	return "****"
}
