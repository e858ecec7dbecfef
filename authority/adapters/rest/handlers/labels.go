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

func NewListLabelsHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListLabels(ctx)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, map[string]any{"labels": items}, http.StatusOK)
	}
}

func NewCreateLabelHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateLabelIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			rest.WriteError(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		label, err := svc.CreateLabel(ctx, core.Label{
			ID:    in.ID,
			Name:  in.Name,
			Color: in.Color,
			Icon:  in.Icon,
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, label, http.StatusCreated)
	}
}
