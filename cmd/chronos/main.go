package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"chronos/internal/bootstrap"
	obsoutadapter "chronos/internal/modules/observation/adapter/out"
	reportoutadapter "chronos/internal/modules/report/adapter/out"
	"chronos/internal/platform/clock"
	"chronos/internal/platform/config"
	"chronos/internal/replay"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	workspace string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "chronos",
		Short:         "Classroom observation recorder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.workspace, "workspace", ".", "workspace directory holding .chronos/ and exported reports")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newReplayCmd(flags))
	root.AddCommand(newReportsCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	return root
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.workspace)
	if err != nil {
		return config.Config{}, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, nil
}

func loadApp(flags *rootFlags, opts bootstrap.Options) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, opts)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive observation dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newReplayCmd(flags *rootFlags) *cobra.Command {
	var scriptPath, export, startAt string
	var copyReport bool

	cmd := &cobra.Command{
		Use:   "replay --file <script.yaml>",
		Short: "Run a scripted session on virtual time and print its report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(scriptPath) == "" {
				return fmt.Errorf("--file is required")
			}
			script, err := replay.Load(scriptPath)
			if err != nil {
				return err
			}
			start := time.Now().Truncate(time.Second)
			if startAt != "" {
				if start, err = time.Parse(time.RFC3339, startAt); err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}
			clk := clock.NewManual(start)
			driver := obsoutadapter.NewManualDriver()
			opts := bootstrap.Options{Clock: clk, Driver: driver}
			if !copyReport {
				opts.Clipboard = reportoutadapter.NewMemoryClipboard()
			}
			app, err := loadApp(flags, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			runner := replay.NewRunner(app.ObservationCLI, clk, driver, time.Second, app.Config.LongPress, app.Logger)
			res, err := runner.Run(ctx, script)
			if err != nil {
				return err
			}
			summary, err := app.ReportCLI.Summary(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, summary.Text)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "replayed %d steps, %d ticks, %d ignored\n", res.Steps, res.Ticks, res.Ignored)

			if export != "" {
				saved, err := app.ReportCLI.Download(ctx, export)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "saved %s report %s (%s)\n", saved.Format, saved.Path, saved.ID)
			}
			if copyReport {
				if _, err := app.ReportCLI.Copy(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "report copied to clipboard")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptPath, "file", "", "replay script (yaml)")
	cmd.Flags().StringVar(&export, "export", "", "also save the report: txt|md")
	cmd.Flags().BoolVar(&copyReport, "copy", false, "copy the report to the system clipboard")
	cmd.Flags().StringVar(&startAt, "start", "", "virtual start time (RFC3339), defaults to now")
	return cmd
}

func newReportsCmd(flags *rootFlags) *cobra.Command {
	reports := &cobra.Command{Use: "reports", Short: "Browse exported reports"}

	reports.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exported reports, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.ReportCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reports")
				return nil
			}
			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.MaxColWidth = 60
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("SUBJECT"), bold.Sprint("FORMAT"), bold.Sprint("DURATION"), bold.Sprint("EXPORTED"), bold.Sprint("PATH"))
			for _, item := range items {
				tbl.AddRow(item.ID, item.Subject, item.Format, item.Duration, humanize.Time(item.CreatedAt), item.Path)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	})

	var reportID string
	var render bool
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Print an exported report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(reportID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			detail, err := app.ReportCLI.Show(context.Background(), reportID)
			if err != nil {
				return err
			}
			content := detail.Content
			if render && detail.Report.Format == "md" {
				if content, err = glamour.Render(detail.Content, "dark"); err != nil {
					return fmt.Errorf("render markdown: %w", err)
				}
			}
			faint := color.New(color.Faint)
			_, _ = faint.Fprintf(cmd.ErrOrStderr(), "%s  %s  %s  exported %s\n", detail.Report.ID, detail.Report.Subject, detail.Report.Duration, humanize.Time(detail.Report.CreatedAt))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		},
	}
	show.Flags().StringVar(&reportID, "id", "", "report id")
	show.Flags().BoolVar(&render, "render", false, "render markdown reports for the terminal")
	reports.AddCommand(show)
	return reports
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration commands"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})
	return cfgCmd
}
