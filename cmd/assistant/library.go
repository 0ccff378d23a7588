package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"snapwort/internal/app"
	"snapwort/internal/httputil"
	"snapwort/internal/store"
)

const maxListLimit = 500

type addWordRequest struct {
	Word     string `json:"word" validate:"required"`
	Meaning  string `json:"meaning" validate:"required"`
	Language string `json:"language" validate:"required,oneof=en de"`
}

type followUpEntryRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

func listWordsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := store.ListFilter{
			Language: normalize(q.Get("language")),
			Search:   strings.TrimSpace(q.Get("q")),
		}
		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 || limit > maxListLimit {
				httputil.Fail(deps.Log, w, "limit must be between 0 and 500", err, http.StatusBadRequest)
				return
			}
			filter.Limit = limit
		}

		words, err := deps.Store.ListWords(r.Context(), filter)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list words", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"words": words})
	}
}

func addWordHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addWordRequest
		if err := httputil.DecodeJSON(w, r, &req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		req.Word = strings.TrimSpace(req.Word)
		req.Meaning = strings.TrimSpace(req.Meaning)
		req.Language = normalize(req.Language)
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		saved, err := deps.Store.AddWord(r.Context(), store.Word{
			Word:     req.Word,
			Meaning:  req.Meaning,
			Language: req.Language,
		})
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to save word", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, saved)
	}
}

func getWordHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := wordID(deps, w, r)
		if !ok {
			return
		}
		word, err := deps.Store.GetWord(r.Context(), id)
		if err != nil {
			failStore(deps, w, "failed to load word", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, word)
	}
}

func deleteWordHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := wordID(deps, w, r)
		if !ok {
			return
		}
		n, err := deps.Store.DeleteWords(r.Context(), id)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to delete word", err, http.StatusInternalServerError)
			return
		}
		if n == 0 {
			httputil.Fail(deps.Log, w, store.ErrWordNotFound.Error(), store.ErrWordNotFound, http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func appendFollowUpHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := wordID(deps, w, r)
		if !ok {
			return
		}
		var req followUpEntryRequest
		if err := httputil.DecodeJSON(w, r, &req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		req.Question = strings.TrimSpace(req.Question)
		req.Answer = strings.TrimSpace(req.Answer)
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		word, err := deps.Store.AppendFollowUp(r.Context(), id, store.FollowUp{
			Question: req.Question,
			Answer:   req.Answer,
		})
		if err != nil {
			failStore(deps, w, "failed to save follow-up", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, word)
	}
}

func wordID(deps app.Deps, w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(deps.Log, w, "invalid word id", err, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func failStore(deps app.Deps, w http.ResponseWriter, message string, err error) {
	if errors.Is(err, store.ErrWordNotFound) {
		httputil.Fail(deps.Log, w, store.ErrWordNotFound.Error(), err, http.StatusNotFound)
		return
	}
	httputil.Fail(deps.Log, w, message, err, http.StatusInternalServerError)
}
