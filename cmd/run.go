package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mindreset/internal/app"
	"github.com/abhisek/mindreset/internal/bank"
	"github.com/abhisek/mindreset/internal/config"
	"github.com/abhisek/mindreset/internal/cue"
	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/logging"
	"github.com/abhisek/mindreset/internal/share"
	"github.com/abhisek/mindreset/internal/store"
)

// env is what every command builds from flags and configuration.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	bank  *bank.Bank
	store *store.Store
}

// loadConfig reads configuration honoring --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: path})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadBank returns the bank named by --bank, then config, then the bundled one.
func loadBank(cmd *cobra.Command, cfg *config.Config) (*bank.Bank, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" && cfg != nil {
		path = cfg.Bank
	}
	if path == "" {
		return bank.Default()
	}
	b, err := bank.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", path, err)
	}
	return b, nil
}

// openEnv loads config, logger, bank and store. Callers must Close it.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	b, err := loadBank(cmd, cfg)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Info("environment ready",
		zap.String("db", dbPath),
		zap.String("bank", b.Title()),
		zap.Int("questions", b.Len()))
	return &env{cfg: cfg, log: log, bank: b, store: st}, nil
}

func (e *env) Close() error {
	err := e.store.Close()
	_ = e.log.Sync()
	return err
}

// newEngine builds an engine over the env's store. onAdvance may be nil.
func (e *env) newEngine(cues cue.Player, onAdvance func(engine.View)) (*engine.Engine, error) {
	policy, err := engine.PolicyFor(e.cfg.Milestone, e.bank)
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Options{
		Bank:         e.bank,
		Store:        e.store.Progress(),
		Cues:         cues,
		Milestones:   policy,
		AdvanceDelay: e.cfg.AdvanceDelay,
		Recorder:     e.store.Answers(),
		Logger:       e.log,
		OnAdvance:    onAdvance,
	})
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	notify, advances := app.Notifier()
	eng, err := e.newEngine(cue.New(e.cfg.Sound, os.Stdout, e.log), notify)
	if err != nil {
		return err
	}
	defer eng.Close()

	return app.Run(app.Options{
		Engine:   eng,
		Sharer:   share.New(e.cfg.Share, e.log),
		Answers:  e.store.Answers(),
		Advances: advances,
	})
}
