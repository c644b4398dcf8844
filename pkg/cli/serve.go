package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/buffet/pkg/cli/config"
	controller "github.com/m-mizutani/buffet/pkg/controller/http"
	"github.com/m-mizutani/buffet/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		slackCfg  config.Slack
		jiraCfg   config.Jira
		storeCfg  config.Store
		deployCfg config.Deploy
		sentryCfg config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, jiraCfg.Flags()...)
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, deployCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting buffet server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("github", githubCfg),
				slog.Any("slack", slackCfg),
				slog.Any("jira", jiraCfg),
				slog.Any("store", storeCfg),
			)

			flushSentry, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flushSentry()

			store, closeStore, err := storeCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure settings store")
			}
			defer closeStore()

			githubClient, err := githubCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure GitHub client")
			}
			slackClient := slackCfg.Configure()
			tracker, err := jiraCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Jira client")
			}
			if tracker == nil {
				logger.Info("Jira is not configured, announcements will not resolve issues")
			}

			// Create use cases
			composer := usecase.NewComposer(usecase.NewIssueLookup(tracker))
			releaseUC := usecase.NewRelease(slackClient, store, composer)
			webhookUC := usecase.NewWebhook(releaseUC)
			deployUC := usecase.NewDeploy(githubClient, slackClient, store, deployCfg.Options()...)
			commandUC := usecase.NewCommand(githubClient, store)

			// Background work started by Slack requests ends with the server
			serverCtx, stopServer := context.WithCancel(ctx)
			defer stopServer()

			// Create HTTP server with options
			server, err := controller.NewServer(
				serverCtx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
				controller.WithSlackSigningSecret(slackCfg.SigningSecret),
				controller.WithSlackClient(slackClient),
				controller.WithCommandUseCase(commandUC),
				controller.WithDeployUseCase(deployUC),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			stopServer()
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
