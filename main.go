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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "github.com/phillip/venturelink/config"
	controllers "github.com/phillip/venturelink/controllers"
	routes "github.com/phillip/venturelink/routes"
	services "github.com/phillip/venturelink/services"
	store "github.com/phillip/venturelink/store"
	utils "github.com/phillip/venturelink/utils"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "venturelink",
	Short: "Founder and investor matching API",
	Long: `VentureLink serves the idea catalogue, likes, investor interest and
founder/investor chat over HTTP.

Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every collection from the configured record store",
	RunE:  runReset,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which record store backend is active",
	RunE:  runStatus,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (or set VENTURELINK_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd, resetCmd, statusCmd)
}

// setup loads config, the logger and the store.
func setup(ctx context.Context) (*config.Config, *zap.Logger, *store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := config.NewLogger(cfg.LogLevel, verbose)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	return cfg, log, st, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, st, err := setup(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()

	docs, err := utils.NewDocumentStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("document storage: %w", err)
	}

	var notifier services.Notifier
	if cfg.MailEnabled() {
		notifier = utils.NewMailer(cfg, log)
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	env := controllers.NewEnv(cfg, st, docs, notifier, log)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(env),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("store", st.Mode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = st.Close(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Warn("store close", zap.Error(err))
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	_, log, st, err := setup(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer st.Close(ctx)

	if err := st.Reset(ctx); err != nil {
		return fmt.Errorf("reset %s store: %w", st.Mode(), err)
	}
	fmt.Printf("Cleared all collections from the %s store\n", st.Mode())
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	cfg, log, st, err := setup(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer st.Close(ctx)

	fmt.Printf("configured backend: %s\n", cfg.Backend)
	fmt.Printf("active backend:     %s\n", st.Mode())
	if cfg.Backend == "mongo" && st.Mode() != "mongo" {
		fmt.Println("mongo unreachable, running on the local store")
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
