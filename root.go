package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/muhammadolammi/skilledge/internal/config"
	"github.com/muhammadolammi/skilledge/internal/database"
	"github.com/muhammadolammi/skilledge/internal/logger"
	"github.com/muhammadolammi/skilledge/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "skilledge"

	storeFile     = "file"
	storePostgres = "postgres"
)

// cli carries the state shared by every subcommand.
type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.New()}

	rootCmd := &cobra.Command{
		Use:          app,
		Short:        "skilledge analyzes resumes: skills, role fit, job matches and interview questions",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the file result store (default data_store)")

	_ = c.v.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))
	_ = c.v.BindPFlag(config.KeyJSON, rootCmd.PersistentFlags().Lookup("json"))
	_ = c.v.BindPFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.AddCommand(
		c.newWorkerCmd(),
		c.newAnalyzeCmd(),
		c.newResultCmd(),
		newSkillsCmd(),
	)
	return rootCmd
}

// setup resolves configuration and builds the logger for a run of command.
func (c *cli) setup(command string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Options{
		Service: app,
		Command: command,
		JSON:    cfg.JSON,
		Debug:   cfg.Debug,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("empty DB_URL in environment")
	}
	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	return db, nil
}

// openStore returns the result store named by kind along with its closer.
func openStore(cfg *config.Config, kind string) (store.Store, func(), error) {
	switch kind {
	case storeFile, "":
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	case storePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(database.New(db)), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q, want %q or %q", kind, storeFile, storePostgres)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
