// Package main provides the CLI entrypoint for liftstats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/liftstats/internal/config"
	"github.com/verte-zerg/liftstats/internal/ingest"
	"github.com/verte-zerg/liftstats/internal/model"
	"github.com/verte-zerg/liftstats/internal/stats"
	"github.com/verte-zerg/liftstats/internal/statsui"
	"github.com/verte-zerg/liftstats/internal/store"
)

const defaultCutoff = "16:30"

var (
	dbPath string

	statsSeason   string
	statsLapLift  string
	statsTimezone string
	statsCutoff   string

	barsColor     bool
	importReplace bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "liftstats",
		Short:         "Ski season statistics from lift ride logs",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runUICmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dbPath, "db", "", "database path (default: XDG data dir)")
	flags.StringVar(&statsSeason, "season", "", "only days on or after this date (YYYY-MM-DD)")
	flags.StringVar(&statsLapLift, "lap-lift", stats.DefaultLapLift, "lift for the fastest back-to-back lap")
	flags.StringVar(&statsTimezone, "tz", "", "timezone for calendar days (default: local)")
	flags.StringVar(&statsCutoff, "cutoff", defaultCutoff, "time of day (HH:MM) after which a missed day ends the streak")

	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLiftsCmd())
	rootCmd.AddCommand(newDaysCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newImportsCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTodayCmd())

	return rootCmd
}

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the stats dashboard",
		Args:  cobra.NoArgs,
		RunE:  runUICmd,
	}
}

func runUICmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveStatsConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	m := statsui.NewModel(st, cfg, stats.SystemClock{Location: cfg.Location})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the season summary",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&barsColor, "color", false, "force colored bars")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	report, err := loadReport(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderDailyBars(out, report.Daily, 0, barsColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLiftsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lifts",
		Short: "Show rides per lift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := loadReport(cmd)
			if err != nil {
				return err
			}
			if err := stats.RenderLiftTable(cmd.OutOrStdout(), report.LiftCounts); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newDaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List stored ski days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := loadReport(cmd)
			if err != nil {
				return err
			}
			if err := stats.RenderDayTable(cmd.OutOrStdout(), report.Days); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import ski days from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().BoolVar(&importReplace, "replace", false, "delete stored days before importing")
	return cmd
}

func runImportCmd(_ *cobra.Command, args []string) error {
	records, err := ingest.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := ingest.Validate(records); err != nil {
		return fmt.Errorf("invalid ride log: %w", err)
	}
	ingest.Normalize(records)
	imported := len(records)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if importReplace {
		if err := st.DeleteAll(ctx); err != nil {
			return err
		}
	} else {
		prior, err := st.ListDays(ctx, "")
		if err != nil {
			return err
		}
		records = ingest.Merge(prior, records)
	}
	n, err := st.UpsertDays(ctx, records)
	if err != nil {
		return err
	}
	if _, err := st.RecordImport(ctx, filepath.Base(args[0]), imported, time.Now()); err != nil {
		return err
	}
	logErrf("Imported %d days from %s (%d stored)\n", imported, filepath.Base(args[0]), n)
	return nil
}

func newImportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "imports",
		Short: "Show the import log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			imports, err := st.ListImports(cmd.Context())
			if err != nil {
				return err
			}
			if err := stats.RenderImportTable(cmd.OutOrStdout(), imports); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored ski days",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			if err := st.DeleteAll(context.Background()); err != nil {
				return err
			}
			logErrln("Deleted all stored days")
			return nil
		},
	}
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's date in the configured timezone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveStatsConfig(cmd)
			if err != nil {
				return err
			}
			today := stats.Today(stats.SystemClock{Location: cfg.Location})
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), today); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadReport(cmd *cobra.Command) (stats.Report, error) {
	cfg, err := resolveStatsConfig(cmd)
	if err != nil {
		return stats.Report{}, err
	}
	st, err := openStore()
	if err != nil {
		return stats.Report{}, err
	}
	defer closeStore(st)
	report, err := stats.BuildReport(cmd.Context(), st, cfg, stats.SystemClock{Location: cfg.Location})
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return report, nil
}

// resolveStatsConfig merges the config file with flags. Flags win.
func resolveStatsConfig(cmd *cobra.Command) (model.StatsConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.StatsConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "season", &statsSeason, fileCfg.Stats.Season)
	applyStringConfig(cmd, "lap-lift", &statsLapLift, fileCfg.Stats.LapLift)
	applyStringConfig(cmd, "tz", &statsTimezone, fileCfg.Stats.Timezone)
	applyStringConfig(cmd, "cutoff", &statsCutoff, fileCfg.Stats.StreakCutoff)
	return buildStatsConfig(statsSeason, statsLapLift, statsTimezone, statsCutoff)
}

func buildStatsConfig(season, lapLift, timezone, cutoff string) (model.StatsConfig, error) {
	season = strings.TrimSpace(season)
	if season != "" {
		if _, err := time.Parse("2006-01-02", season); err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --season value %q (expected YYYY-MM-DD)", season)
		}
	}
	loc, err := config.LoadLocation(timezone)
	if err != nil {
		return model.StatsConfig{}, err
	}
	var cutoffDur time.Duration
	if strings.TrimSpace(cutoff) != "" {
		cutoffDur, err = config.ParseCutoff(cutoff)
		if err != nil {
			return model.StatsConfig{}, err
		}
	}
	return model.StatsConfig{
		Season:       season,
		LapLift:      strings.TrimSpace(lapLift),
		StreakCutoff: cutoffDur,
		Location:     loc,
	}, nil
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# liftstats configuration
# Uncomment a value to enable it. CLI flags override config values.

[stats]
# timezone = "America/Denver"  # Zone that defines calendar days (default: local)
# season = "2024-11-01"        # Only count days on or after this date
# lap-lift = %q           # Lift for the fastest back-to-back lap
# streak-cutoff = %q         # After this time a missed day ends the current streak
`,
		stats.DefaultLapLift,
		defaultCutoff,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
