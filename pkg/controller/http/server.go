package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr               string
	webhookSecret      string
	slackSigningSecret string
	slackClient        interfaces.SlackClient
	commandUC          interfaces.CommandUseCase
	deployUC           interfaces.DeployUseCase
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret sets the webhook secret
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithSlackSigningSecret sets the secret verifying Slack requests
func WithSlackSigningSecret(secret string) Option {
	return func(c *config) {
		c.slackSigningSecret = secret
	}
}

// WithSlackClient makes slash commands answer through their response URL
// after an immediate acknowledgement
func WithSlackClient(client interfaces.SlackClient) Option {
	return func(c *config) {
		c.slackClient = client
	}
}

// WithCommandUseCase enables the slash command endpoint
func WithCommandUseCase(uc interfaces.CommandUseCase) Option {
	return func(c *config) {
		c.commandUC = uc
	}
}

// WithDeployUseCase enables the interaction endpoint
func WithDeployUseCase(uc interfaces.DeployUseCase) Option {
	return func(c *config) {
		c.deployUC = uc
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server. Slack endpoints are mounted only for
// the use cases given by options. Work started in the background by Slack
// requests is cancelled when ctx is done.
func NewServer(
	ctx context.Context,
	webhookUC interfaces.WebhookUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// GitHub release webhook
	webhookHandler := NewWebhookHandler(cfg.webhookSecret, webhookUC)
	router.Post("/hooks/github", webhookHandler.Handle)

	// Slack ingress
	if cfg.commandUC != nil || cfg.deployUC != nil {
		slackHandler := newSlackHandler(ctx, cfg)
		router.Route("/hooks/slack", func(r chi.Router) {
			r.Use(slackHandler.Verify)
			if cfg.commandUC != nil {
				r.Post("/command", slackHandler.HandleCommand)
			}
			if cfg.deployUC != nil {
				r.Post("/interaction", slackHandler.HandleInteraction)
			}
		})
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
