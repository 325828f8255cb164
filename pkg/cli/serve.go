package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/sheqworks/themis/pkg/cli/config"
	httpctrl "github.com/sheqworks/themis/pkg/controller/http"
	"github.com/sheqworks/themis/pkg/service/narrative"
	"github.com/sheqworks/themis/pkg/usecase"
	"github.com/sheqworks/themis/pkg/utils/logging"
	"github.com/sheqworks/themis/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var seedFile string
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("THEMIS_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "Legal knowledge base TOML to load at startup (useful with the memory backend)",
			Sources:     cli.EnvVars("THEMIS_SEED_FILE"),
			Destination: &seedFile,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			if seedFile != "" {
				if err := loadSeedData(ctx, repo, seedFile); err != nil {
					return goerr.Wrap(err, "failed to load seed data", goerr.V("path", seedFile))
				}
			}

			// Initialize Gemini client for narrative generation
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}

			var ucOpts []usecase.Option
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithNarrative(narrative.New(llmClient)))
				logging.Default().Info("Narrative generation enabled")
			} else {
				logging.Default().Info("Gemini project not configured, gap summaries will carry fallback narrative")
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
