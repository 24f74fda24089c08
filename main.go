package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"focuscal/internal/api"
	"focuscal/internal/bridge"
	"focuscal/internal/config"
	"focuscal/internal/importer"
	"focuscal/internal/ics"
	"focuscal/internal/model"
	"focuscal/internal/schedule"
	"focuscal/internal/server"
	"focuscal/internal/task"
	"focuscal/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path (default: XDG config dir)")
		serve      = flag.Bool("serve", false, "run the HTTP schedule server instead of the TUI")
		addr       = flag.String("addr", "", "listen address for -serve (overrides config)")
		apiBase    = flag.String("api", "", "schedule server base URL; the TUI talks HTTP instead of local files")
		dbPath     = flag.String("db", "", "task database path (default: XDG data dir)")
		dataDir    = flag.String("data", "", "data directory for schedules and logs")
		importPath = flag.String("import", "", "import schedules from a YAML file and exit")
		exportPath = flag.String("export-ics", "", "export schedules as iCalendar to a file and exit")
	)
	flag.Parse()

	if err := run(*configPath, *serve, *addr, *apiBase, *dbPath, *dataDir, *importPath, *exportPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, serve bool, addr, apiBase, dbPath, dataDir, importPath, exportPath string) error {
	if configPath == "" {
		var err error
		if configPath, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Listen = addr
	}
	if apiBase != "" {
		cfg.APIBase = apiBase
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	interactive := !serve && importPath == "" && exportPath == ""
	log, err := buildLogger(cfg, interactive)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	newLocalStore := func() (*schedule.Store, error) {
		path := ""
		if cfg.DataDir != "" {
			path = filepath.Join(cfg.DataDir, "schedules.json")
		} else {
			p, err := schedule.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return schedule.NewStore(schedule.NewFileBlob(path), schedule.WithLogger(log)), nil
	}

	switch {
	case importPath != "":
		data, err := os.ReadFile(importPath)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var repo importer.Repository
		if cfg.APIBase != "" {
			repo = api.NewClient(cfg.APIBase)
		} else {
			if repo, err = newLocalStore(); err != nil {
				return err
			}
		}
		n, err := importer.Import(repo, string(data))
		if err != nil {
			return fmt.Errorf("imported %d entries, then: %w", n, err)
		}
		fmt.Printf("Imported %d schedule entries\n", n)
		return nil

	case exportPath != "":
		entries, err := listEntries(cfg, newLocalStore)
		if err != nil {
			return err
		}
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		if err := ics.Export(entries, f); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("Exported %d schedule entries to %s\n", len(entries), exportPath)
		return nil

	case serve:
		store, err := newLocalStore()
		if err != nil {
			return err
		}
		tasks, err := task.NewStore(dbPath)
		if err != nil {
			return fmt.Errorf("open task database: %w", err)
		}
		defer tasks.Close()

		srv := server.New(store, tasks, log)
		log.Info("listening", zap.String("addr", cfg.Listen))
		return http.ListenAndServe(cfg.Listen, srv.Handler())
	}

	return runTUI(cfg, dbPath, log, newLocalStore)
}

func runTUI(cfg *config.Config, dbPath string, log *zap.Logger, newLocalStore func() (*schedule.Store, error)) error {
	var repo ui.Repository
	if cfg.APIBase != "" {
		repo = api.NewClient(cfg.APIBase)
	} else {
		store, err := newLocalStore()
		if err != nil {
			return err
		}
		repo = store
	}

	var labeler ui.TaskLabeler
	tasks, err := task.NewStore(dbPath)
	if err != nil {
		log.Warn("task database unavailable", zap.Error(err))
	} else {
		defer tasks.Close()
		labeler = tasks
	}

	src := bridge.NewChanSource()
	defer src.Close()

	if dir := bridgeDir(cfg); dir != "" {
		sock, err := bridge.ListenSocket(filepath.Join(dir, "bridge.sock"), src, log)
		if err != nil {
			log.Warn("bridge socket unavailable", zap.Error(err))
		} else {
			defer sock.Close()
		}

		sample := bridge.FileRateSampler(filepath.Join(dir, "input_rate"))
		poller := bridge.NewPoller(bridge.DefaultPollInterval, sample, func(rate float64) {
			if rate > 0 {
				if err := src.Emit(string(bridge.KindNotification)); err != nil {
					log.Warn("intervention dropped", zap.Error(err))
				}
			}
		}, log)
		poller.Start()
		defer poller.Stop()
	}

	m := ui.New(repo, labeler,
		ui.WithEvents(src.Events()),
		ui.WithLogger(log),
	)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func listEntries(cfg *config.Config, newLocalStore func() (*schedule.Store, error)) ([]model.ScheduleEntry, error) {
	if cfg.APIBase != "" {
		return api.NewClient(cfg.APIBase).List()
	}
	store, err := newLocalStore()
	if err != nil {
		return nil, err
	}
	return store.List()
}

// bridgeDir is where the native host drops its socket and rate file.
func bridgeDir(cfg *config.Config) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	path, err := schedule.DefaultPath()
	if err != nil {
		return ""
	}
	return filepath.Dir(path)
}

func buildLogger(cfg *config.Config, interactive bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.LogLevel); err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if interactive {
		// The terminal belongs to the TUI; logs go to a file next to the data.
		dir := bridgeDir(cfg)
		if dir == "" {
			return zap.NewNop(), nil
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{filepath.Join(dir, "focuscal.log")}
		zc.ErrorOutputPaths = zc.OutputPaths
	} else {
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}
	return zc.Build()
}
