package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jsandbrook/home-maintenance/authority/core"
)

func WriteJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, msg string, statusCode int) {
	WriteJSON(w, map[string]any{"error": msg}, statusCode)
}

func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrTaskInvalidArgs),
		errors.Is(err, core.ErrTagInvalidArgs),
		errors.Is(err, core.ErrLabelInvalidArgs):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrTaskNotFound),
		errors.Is(err, core.ErrTagNotFound),
		errors.Is(err, core.ErrLabelNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrTagAlreadyExists),
		errors.Is(err, core.ErrLabelAlreadyExists):
		WriteError(w, err.Error(), http.StatusConflict)
	default:
		WriteError(w, "internal error", http.StatusInternalServerError)
	}
}
