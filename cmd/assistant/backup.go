package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"snapwort/internal/app"
	"snapwort/internal/backup"
	"snapwort/internal/httputil"
)

func backupHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transport, user := chi.URLParam(r, "transport"), chi.URLParam(r, "user")
		snap, err := deps.Backups.Backup(r.Context(), transport, user)
		if err != nil {
			failBackup(deps, w, "backup failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"transport":  transport,
			"user":       user,
			"words":      len(snap.Library),
			"lastBackup": snap.LastBackup,
		})
	}
}

func restoreHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transport, user := chi.URLParam(r, "transport"), chi.URLParam(r, "user")
		snap, err := deps.Backups.Restore(r.Context(), transport, user)
		if err != nil {
			failBackup(deps, w, "restore failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"transport": transport,
			"user":      user,
			"words":     len(snap.Library),
		})
	}
}

func failBackup(deps app.Deps, w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, backup.ErrUserRequired):
		httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, backup.ErrUnknownTransport), errors.Is(err, backup.ErrNotFound):
		httputil.Fail(deps.Log, w, err.Error(), err, http.StatusNotFound)
	default:
		httputil.Fail(deps.Log, w, message, err, http.StatusInternalServerError)
	}
}
