package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RomanKim94/foodgram/config"
	"github.com/RomanKim94/foodgram/db"
	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/importer"
	"github.com/RomanKim94/foodgram/logger"
	"github.com/RomanKim94/foodgram/repository"
	"github.com/RomanKim94/foodgram/route"
	"github.com/RomanKim94/foodgram/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logger.InitializeLogger() // Initialize the logger
	defer logger.Close()

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Close()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "foodgram",
		Short:         "Recipe sharing backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config/development.yaml", "path to the YAML config")

	root.AddCommand(newServeCmd(&configPath), newImportCmd(&configPath))
	return root
}

// setup loads the config, connects to the database and migrates it.
func setup(configPath string) (*entity.Config, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := db.InitDB(cfg); err != nil {
		return nil, err
	}
	if err := db.Migrate(db.GetDBInstance()); err != nil {
		db.Close()
		return nil, err
	}
	return cfg, nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer db.Close() // Close the database connection when the server exits

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			images, err := storage.New(ctx, cfg.Media)
			if err != nil {
				return err
			}

			if os.Getenv("ENV") == "production" {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())
			route.SetupRoutes(r, db.GetDBInstance(), cfg, images)

			srv := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", zap.String("addr", srv.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newImportCmd(configPath *string) *cobra.Command {
	var batchSize int
	cmd := &cobra.Command{
		Use:       "import (products|tags) FILE",
		Short:     "Load products or tags from a JSON file (.gz allowed)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"products", "tags"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			if kind != "products" && kind != "tags" {
				return fmt.Errorf("unknown import kind %q", kind)
			}
			if _, err := setup(*configPath); err != nil {
				return err
			}
			defer db.Close()

			gormDB := db.GetDBInstance()
			im := importer.New(repository.NewProductRepository(gormDB), repository.NewTagRepository(gormDB), batchSize)
			inserted, err := im.ImportFile(cmd.Context(), kind, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s inserted\n", inserted, kind)
			return nil
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 500, "rows per INSERT statement")
	return cmd
}
