// Package handler provides HTTP handlers for the review-warden server.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/review-warden/internal/config"
	"github.com/sevigo/review-warden/internal/core"
)

// WebhookHandler processes incoming webhooks from GitHub.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler with the given configuration and dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes GitHub webhook requests.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, []byte(h.cfg.GitHub.WebhookSecret))
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	var (
		ev        *core.GitHubEvent
		ignoreErr error
	)
	switch e := event.(type) {
	case *github.PullRequestEvent:
		ev, ignoreErr = core.EventFromPullRequest(e)
	case *github.PullRequestReviewEvent:
		ev, ignoreErr = core.EventFromPullRequestReview(e)
	default:
		h.logger.Debug("ignoring unhandled webhook event type", "type", github.WebHookType(r))
		_, _ = fmt.Fprint(w, "Event type not handled")
		return
	}
	if ignoreErr != nil {
		h.logger.Debug("ignoring webhook", "type", github.WebHookType(r), "reason", ignoreErr.Error())
		_, _ = fmt.Fprint(w, "Event ignored")
		return
	}

	h.dispatch(r.Context(), w, ev)
}

func (h *WebhookHandler) dispatch(ctx context.Context, w http.ResponseWriter, ev *core.GitHubEvent) {
	if err := h.dispatcher.Dispatch(ctx, ev); err != nil {
		h.logger.Error("failed to dispatch job", "error", err, "type", ev.Type, "repo", ev.RepoFullName)
		http.Error(w, "Failed to queue job", http.StatusServiceUnavailable)
		return
	}

	h.logger.Info("job dispatched", "type", ev.Type, "repo", ev.RepoFullName, "pr", ev.PRNumber)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Job accepted")
}
