package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/taskpad/internal/config"
	"github.com/sadopc/taskpad/internal/session"
	"github.com/sadopc/taskpad/internal/store"
	"github.com/sadopc/taskpad/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	dbPath     string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "taskpad",
		Short:         "Session-scoped task and idea capture in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/taskpad/config.yaml)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "settings database path")
	root.PersistentFlags().StringVar(&flags.logFile, "log", "", "write debug log to this file")

	root.AddCommand(newSettingsCmd(&flags))
	return root
}

// loadConfig layers defaults, the YAML file, TASKPAD_* variables and flags.
func loadConfig(flags rootFlags) (config.Config, error) {
	cfg, err := config.Default()
	if err != nil {
		return cfg, err
	}
	path := flags.configPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return cfg, err
		}
	}
	if cfg, err = config.Load(path, cfg); err != nil {
		return cfg, err
	}
	cfg = config.FromEnv(cfg)
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	return cfg, nil
}

func runTUI(cfg config.Config) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "taskpad")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	prefs, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer prefs.Close()

	sessions := session.NewStore(session.WithAppendHook(func(id string, record any) {
		switch r := record.(type) {
		case session.Task:
			log.Printf("session %.8s: append task due=%s", id, r.DueDate.Format(session.DateLayout))
		case session.Idea:
			log.Printf("session %.8s: append idea len=%d", id, len([]rune(r.Text)))
		}
	}))

	app := tui.NewApp(sessions, prefs, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Inspect or change stored preferences"}

	settings.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(*flags)
			if err != nil {
				return err
			}
			defer s.Close()

			all, err := s.GetAllSettings()
			if err != nil {
				return err
			}
			for _, st := range all {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-18s %-20s %s\n",
					st.Key, st.Value, st.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetSetting(args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})
	return settings
}

func openStore(flags rootFlags) (*store.Store, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return s, nil
}
