// Package cli wires configuration, logging and storage together behind
// the sortbase command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nhle/sortbase/internal/app"
	"github.com/nhle/sortbase/internal/inventory"
	"github.com/nhle/sortbase/internal/logging"
	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/store"
	"github.com/nhle/sortbase/internal/ui/format"
)

// App carries the persistent flags and the state prepared for every
// command.
type App struct {
	ConfigPath string
	DataPath   string
	Backend    string
	LogLevel   string

	v      *viper.Viper
	cfg    *model.AppConfig
	log    *slog.Logger
	logOut io.Closer
}

func NewRootCmd() *cobra.Command {
	a := &App{v: model.NewViper()}

	cmd := &cobra.Command{
		Use:          "sortbase",
		Short:        "Hierarchical inventory of lists and items",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  sortbase

  # Print every list with its totals
  sortbase tree --totals

  # Back up the inventory as YAML
  sortbase export --format yaml > inventory.yaml
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), a)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.logOut != nil {
			return a.logOut.Close()
		}
		return nil
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.ConfigPath, "config", model.DefaultConfigPath(), "Path to the YAML config file")
	flags.StringVar(&a.DataPath, "data", "", "Path to the inventory data file (overrides storage.path)")
	flags.StringVar(&a.Backend, "backend", "", "Storage backend (json|sqlite)")
	flags.StringVar(&a.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	_ = a.v.BindPFlag("storage.path", flags.Lookup("data"))
	_ = a.v.BindPFlag("storage.backend", flags.Lookup("backend"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	cmd.AddCommand(newTreeCmd(a))
	cmd.AddCommand(newTotalsCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// setup loads the configuration and installs the file logger.
func (a *App) setup() error {
	cfg, err := model.LoadConfigWith(a.v, a.ConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	closer, err := logging.Init(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logOut = closer
	a.log = slog.Default()
	a.log.Debug("configuration loaded", "config", a.ConfigPath, "backend", cfg.Storage.Backend, "data", cfg.Storage.Path)
	return nil
}

func (a *App) formatter() format.Formatter {
	return format.New(a.cfg.Display.Currency)
}

// openSession opens the configured store and loads the inventory. With
// strict set a load failure is returned instead of starting empty.
func (a *App) openSession(ctx context.Context, strict bool) (*inventory.Session, store.Store, error) {
	st, err := store.Open(a.cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	s := inventory.Open(ctx, st,
		inventory.WithLogger(a.log),
		inventory.WithLocale(a.cfg.Display.Locale),
	)
	if err := s.LoadError(); err != nil && strict {
		_ = st.Close()
		return nil, nil, fmt.Errorf("loading %s: %w", a.cfg.Storage.Path, err)
	}
	return s, st, nil
}

func runTUI(ctx context.Context, a *App) error {
	st, err := store.Open(a.cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	m := app.New(app.Options{
		Store:    st,
		Source:   a.cfg.Storage.Path,
		Currency: a.cfg.Display.Currency,
		Locale:   a.cfg.Display.Locale,
		Logger:   a.log,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
