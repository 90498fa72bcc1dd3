package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/daybook/internal/attachments"
	"github.com/existflow/daybook/internal/config"
	"github.com/existflow/daybook/internal/db"
	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/store"
	"github.com/existflow/daybook/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	dataDir    string
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Daybook - personal planner for tasks, requirements and notes",
	Long: `Daybook keeps a local calendar of tasks, a board of requirements derived
from them, and a notebook, all in one SQLite file.

Run 'daybook' without arguments to open the day agenda.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err.Error()))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err.Error()))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		a, err := openApp(cfg)
		if err != nil {
			logger.Error("Failed to open data directory", logger.F("error", err.Error()))
			return err
		}
		cmd.SetContext(withApp(cmd.Context(), a))

		logger.Info("Daybook started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)

		logger.Info("Launching TUI")
		m := tui.NewModel(a.store, a.cfg.Week())
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err.Error()))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if a := appFrom(cmd); a != nil {
			a.Close()
		}
		logger.Info("Daybook exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the database and attachments")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	// Add subcommands
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(reqCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(monthCmd)
}

// app holds the services built for one command invocation
type app struct {
	cfg   *config.Config
	db    *db.DB
	files *attachments.Manager
	store *store.Store
}

func openApp(cfg *config.Config) (*app, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	files, err := attachments.New(cfg.AttachmentsDir())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open attachments: %w", err)
	}

	return &app{
		cfg:   cfg,
		db:    database,
		files: files,
		store: store.New(database, store.WithAttachments(files)),
	}, nil
}

// Close releases the database
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		logger.Warn("Failed to close database", logger.F("error", err.Error()))
		return
	}
	logger.Info("Database closed")
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(cmd *cobra.Command) *app {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	a, _ := ctx.Value(appKey{}).(*app)
	return a
}
