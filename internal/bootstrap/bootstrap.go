package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	obsinadapter "chronos/internal/modules/observation/adapter/in"
	obsoutadapter "chronos/internal/modules/observation/adapter/out"
	obsdomain "chronos/internal/modules/observation/domain"
	obsout "chronos/internal/modules/observation/port/out"
	obsservice "chronos/internal/modules/observation/service"
	obsusecase "chronos/internal/modules/observation/usecase"
	reportinadapter "chronos/internal/modules/report/adapter/in"
	reportoutadapter "chronos/internal/modules/report/adapter/out"
	reportdomain "chronos/internal/modules/report/domain"
	reportout "chronos/internal/modules/report/port/out"
	reportservice "chronos/internal/modules/report/service"
	reportusecase "chronos/internal/modules/report/usecase"
	"chronos/internal/platform/clock"
	"chronos/internal/platform/config"
	"chronos/internal/platform/id"
	"chronos/internal/platform/logging"
	uiapp "chronos/internal/ui/app"
)

// Options replaces the live collaborators. Zero values select the system
// clock, a ticker driver at the configured interval, the system clipboard
// and a logger writing to the configured log file.
type Options struct {
	Clock     clock.Clock
	Driver    obsout.TickDriver
	Clipboard reportout.Clipboard
	Logger    hclog.Logger
}

type App struct {
	Config         config.Config
	Logger         hclog.Logger
	ObservationCLI obsinadapter.CLIHandler
	ReportCLI      reportinadapter.CLIHandler

	closers []io.Closer
}

func New(cfg config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}

	logger := opts.Logger
	if logger == nil {
		l, closer, err := logging.New(logging.Options{Name: "chronos", Level: cfg.LogLevel, File: cfg.LogFile})
		if err != nil {
			return nil, fmt.Errorf("new logger: %w", err)
		}
		logger = l
		app.closers = append(app.closers, closer)
	}
	app.Logger = logger

	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	driver := opts.Driver
	if driver == nil {
		driver = obsoutadapter.NewTickerDriver(cfg.TickInterval)
	}
	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = reportoutadapter.NewSystemClipboard()
	}

	engine := obsservice.NewEngine(clk, templates(cfg.States), templates(cfg.Actions), cfg.DefaultSubject)
	observationUC := obsusecase.NewInteractor(engine, driver, logger)
	app.closers = append(app.closers, observationUC)

	archive, err := reportoutadapter.NewSQLiteReportIndex(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new report index: %w", err)
	}
	renderer := reportdomain.Renderer{AppName: cfg.AppName, Location: cfg.Location}
	reportUC := reportusecase.NewInteractor(reportusecase.Dependencies{
		Summary:   reportservice.NewSummaryService(clk, reportoutadapter.NewObservationSource(observationUC), renderer),
		Clipboard: clipboard,
		Writers: map[reportdomain.Format]reportout.ReportWriter{
			reportdomain.FormatText:     reportoutadapter.NewTextFileExporter(cfg.ExportDir),
			reportdomain.FormatMarkdown: reportoutadapter.NewMarkdownNoteStore(cfg.ReportsDir, renderer),
		},
		Reader:  reportoutadapter.NewFileReportReader(),
		Archive: archive,
		IDs:     id.UUID{},
		Prefix:  cfg.ReportPrefix,
		Logger:  logger,
	})
	app.closers = append(app.closers, reportUC)

	app.ObservationCLI = obsinadapter.NewCLIHandler(observationUC)
	app.ReportCLI = reportinadapter.NewCLIHandler(reportUC)
	logger.Debug("app wired", "workspace", cfg.WorkspacePath, "db", cfg.DBPath)
	return app, nil
}

// Close releases resources in reverse wiring order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ObservationCLI, app.ReportCLI, uiapp.Options{
		AppName:           app.Config.AppName,
		DefaultSubject:    app.Config.DefaultSubject,
		Subjects:          app.Config.Subjects,
		LongPress:         app.Config.LongPress,
		InactivityTimeout: app.Config.InactivityTimeout,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func templates(items []config.CatalogItem) []obsdomain.Template {
	if len(items) == 0 {
		return nil
	}
	out := make([]obsdomain.Template, 0, len(items))
	for _, item := range items {
		out = append(out, obsdomain.Template{ID: item.ID, Name: item.Name})
	}
	return out
}
