package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/rubric"
	"github.com/tsawler/rubric/internal/httpapi"
	"github.com/tsawler/rubric/model"
	"github.com/tsawler/rubric/outline"
)

var (
	serveAddr      string
	serveRulesFile string
	serveMaxPages  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the outline extraction HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (env RUBRIC_ADDR)")
	serveCmd.Flags().StringVar(&serveRulesFile, "rules", "", "YAML rules file with overrides and boilerplate (env RUBRIC_RULES)")
	serveCmd.Flags().IntVar(&serveMaxPages, "max-pages", 50, "reject documents with more pages than this (0 = no limit)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	// Environment fills in anything not set on the command line
	if !cmd.Flags().Changed("addr") {
		if v := os.Getenv("RUBRIC_ADDR"); v != "" {
			serveAddr = v
		}
	}
	if serveRulesFile == "" {
		serveRulesFile = os.Getenv("RUBRIC_RULES")
	}

	var rules *outline.Rules
	if serveRulesFile != "" {
		if rules, err = outline.LoadRules(serveRulesFile); err != nil {
			return err
		}
	}

	extract := func(_ context.Context, path, name string) (model.Outline, error) {
		e := rubric.Open(path).WithName(name).WithLogger(log).WithMaxPages(serveMaxPages)
		if rules != nil {
			e = e.WithRules(rules)
		}
		return e.Outline()
	}

	api := httpapi.NewServer(extract, httpapi.Config{Logger: log})
	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      api,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", zap.String("addr", serveAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
	}
	log.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
