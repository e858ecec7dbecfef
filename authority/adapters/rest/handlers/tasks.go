package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jsandbrook/home-maintenance/authority/adapters/rest"
	"github.com/jsandbrook/home-maintenance/authority/core"
)

func parseIntervalType(s string) (core.IntervalType, bool) {
	t := core.IntervalType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

func NewCreateTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			rest.WriteError(w, "invalid json", http.StatusBadRequest)
			return
		}

		intervalType, ok := parseIntervalType(in.IntervalType)
		if !ok {
			rest.WriteError(w, "invalid interval_type", http.StatusBadRequest)
			return
		}

		draft := core.TaskDraft{
			Title:         in.Title,
			IntervalValue: in.IntervalValue,
			IntervalType:  intervalType,
			TagID:         in.TagID,
			Icon:          in.Icon,
			Labels:        in.Labels,
		}
		if in.LastPerformed != nil {
			draft.LastPerformed = *in.LastPerformed
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, draft)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, t, http.StatusCreated)
	}
}

func NewGetTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, t, http.StatusOK)
	}
}

func NewListTasksHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, map[string]any{"tasks": items}, http.StatusOK)
	}
}

func NewPatchTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var in rest.PatchTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			rest.WriteError(w, "invalid json", http.StatusBadRequest)
			return
		}

		p := core.TaskPatch{
			Title:         in.Title,
			IntervalValue: in.IntervalValue,
			LastPerformed: in.LastPerformed,
			TagID:         in.TagID,
			Icon:          in.Icon,
			Labels:        in.Labels,
		}
		if in.IntervalType != nil {
			intervalType, ok := parseIntervalType(*in.IntervalType)
			if !ok {
				rest.WriteError(w, "invalid interval_type", http.StatusBadRequest)
				return
			}
			p.IntervalType = &intervalType
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.PatchTask(ctx, id, p)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, t, http.StatusOK)
	}
}

func NewCompleteTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		// body is optional: an empty body means "performed now"
		var in rest.CompleteTaskIn
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				rest.WriteError(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CompleteTask(ctx, id, in.PerformedDate)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, t, http.StatusOK)
	}
}

func NewDeleteTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		rest.WriteJSON(w, map[string]any{"ok": true}, http.StatusOK)
	}
}
