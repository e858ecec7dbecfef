package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsandbrook/home-maintenance/authority/adapters/rest"
	"github.com/jsandbrook/home-maintenance/authority/core"
)

func NewPingHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.Ping(ctx); err != nil {
			log.Warn("ping failed", "error", err)
			rest.WriteJSON(w, map[string]string{"storage": "down"}, http.StatusServiceUnavailable)
			return
		}
		rest.WriteJSON(w, map[string]string{"storage": "ok"}, http.StatusOK)
	}
}

func NewConfigHandler(svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rest.WriteJSON(w, svc.Config(), http.StatusOK)
	}
}

func NewRegistryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		entries, err := svc.Registry(ctx)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, map[string]any{"entries": entries}, http.StatusOK)
	}
}
