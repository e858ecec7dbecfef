package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsandbrook/home-maintenance/authority/core"
)

func Register(mux *http.ServeMux, log *slog.Logger, svc *core.Service, timeout time.Duration) {
	// health
	mux.Handle("GET /api/ping", NewPingHandler(log, svc, timeout))

	// display options
	mux.Handle("GET /api/config", NewConfigHandler(svc))

	// tags
	mux.Handle("GET /api/tags", NewListTagsHandler(log, svc, timeout))
	mux.Handle("POST /api/tags", NewCreateTagHandler(log, svc, timeout))
	mux.Handle("POST /api/tags/{id}/scan", NewScanTagHandler(log, svc, timeout))

	// labels and the task -> label registry
	mux.Handle("GET /api/labels", NewListLabelsHandler(log, svc, timeout))
	mux.Handle("POST /api/labels", NewCreateLabelHandler(log, svc, timeout))
	mux.Handle("GET /api/registry", NewRegistryHandler(log, svc, timeout))

	// tasks
	mux.Handle("GET /api/tasks", NewListTasksHandler(log, svc, timeout))
	mux.Handle("POST /api/tasks", NewCreateTaskHandler(log, svc, timeout))
	mux.Handle("GET /api/tasks/{id}", NewGetTaskHandler(log, svc, timeout))
	mux.Handle("PATCH /api/tasks/{id}", NewPatchTaskHandler(log, svc, timeout))
	mux.Handle("POST /api/tasks/{id}/complete", NewCompleteTaskHandler(log, svc, timeout))
	mux.Handle("DELETE /api/tasks/{id}", NewDeleteTaskHandler(log, svc, timeout))
}
