package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsandbrook/home-maintenance/authority/adapters/rest"
	"github.com/jsandbrook/home-maintenance/authority/core"
)

func NewListTagsHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTags(ctx)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, map[string]any{"tags": items}, http.StatusOK)
	}
}

func NewCreateTagHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTagIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			rest.WriteError(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		tag, err := svc.CreateTag(ctx, core.Tag{ID: in.ID, Name: in.Name})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, tag, http.StatusCreated)
	}
}

func NewScanTagHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		completed, err := svc.ScanTag(ctx, id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		log.Debug("tag scanned", "tag_id", id, "completed", len(completed))
		rest.WriteJSON(w, map[string]any{"completed": completed}, http.StatusOK)
	}
}
