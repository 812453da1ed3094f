package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/muhammadolammi/skilledge/internal/config"
	"github.com/muhammadolammi/skilledge/internal/database"
	"github.com/muhammadolammi/skilledge/internal/objectstore"
	"github.com/muhammadolammi/skilledge/internal/skills"
	"github.com/muhammadolammi/skilledge/internal/store"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func (c *cli) newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume analysis requests from RabbitMQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := c.setup(cmd.Name())
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.ValidateWorker(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			objects, err := objectstore.NewR2Client(ctx, objectstore.R2Config{
				AccountID: cfg.R2AccountID,
				Bucket:    cfg.R2Bucket,
				AccessKey: cfg.R2AccessKey,
				SecretKey: cfg.R2SecretKey,
			})
			if err != nil {
				return err
			}

			analyzer, cleanup, err := newAnalyzer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			conn, err := amqp.Dial(cfg.RabbitMQURL)
			if err != nil {
				return fmt.Errorf("error connecting to RabbitMQ: %w", err)
			}
			defer conn.Close()
			if err := declareUpdatesExchange(conn); err != nil {
				return fmt.Errorf("failed to declare %s exchange: %w", updatesExchange, err)
			}

			queries := database.New(db)
			workerConfig := WorkerConfig{
				DB:          queries,
				Store:       store.NewPostgresStore(queries),
				Objects:     objects,
				Analyzer:    analyzer,
				Publisher:   &amqpPublisher{conn: conn},
				RabbitMQURL: cfg.RabbitMQURL,
				Logger:      log,
			}

			log.Info("starting consumer worker pool", zap.Int("workers", cfg.Workers))
			return workerConfig.StartConsumerWorkerPool(ctx, cfg.Workers)
		},
	}

	cmd.Flags().Int("workers", 3, "number of concurrent consumers")
	_ = c.v.BindPFlag(config.KeyWorkers, cmd.Flags().Lookup("workers"))
	return cmd
}

func (c *cli) newAnalyzeCmd() *cobra.Command {
	var file, user, storeKind string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a PDF or DOCX resume and store the result for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := c.setup(cmd.Name())
			if err != nil {
				return err
			}
			defer log.Sync()
			ctx := commandContext(cmd)

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			results, closeStore, err := openStore(cfg, storeKind)
			if err != nil {
				return err
			}
			defer closeStore()

			analyzer, cleanup, err := newAnalyzer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := analyzer.AnalyzeDocument(ctx, filepath.Base(file), data)
			if err != nil {
				return err
			}
			if err := results.Save(ctx, user, res); err != nil {
				return err
			}
			log.Info("analysis saved", zap.String("user_id", user), zap.String("store", storeKind))

			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "resume file (.pdf or .docx)")
	cmd.Flags().StringVarP(&user, "user", "u", "", "user the result belongs to")
	cmd.Flags().StringVar(&storeKind, "store", storeFile, "result store: file or postgres")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (c *cli) newResultCmd() *cobra.Command {
	var user, storeKind string

	cmd := &cobra.Command{
		Use:   "result",
		Short: "Print the stored analysis for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := c.setup(cmd.Name())
			if err != nil {
				return err
			}
			defer log.Sync()

			results, closeStore, err := openStore(cfg, storeKind)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := results.Load(commandContext(cmd), user)
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No results yet. Analyze a resume first.")
				return nil
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user whose result to print")
	cmd.Flags().StringVar(&storeKind, "store", storeFile, "result store: file or postgres")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newSkillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List the built-in skill vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range skills.DefaultVocabulary().Sorted() {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
