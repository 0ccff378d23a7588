package main

import (
	"net/http"
	"strings"

	"snapwort/internal/app"
	"snapwort/internal/cache"
	"snapwort/internal/conversation"
	"snapwort/internal/httputil"
	"snapwort/internal/language"
	"snapwort/internal/llm"
	"snapwort/internal/orchestrator"
)

// Shown to users whenever every provider failed. Provider detail stays in the logs.
const unavailableMessage = "The language model failed to respond. Please try again later."

type meaningRequest struct {
	Word     string `json:"word" validate:"required"`
	Language string `json:"language" validate:"required,oneof=en de"`
	Model    string `json:"model" validate:"omitempty,oneof=openai groq mistral huggingface"`
}

type followUpRequest struct {
	Question        string              `json:"question" validate:"required"`
	Language        string              `json:"language" validate:"required,oneof=en de"`
	PreviousContext []conversation.Turn `json:"previousContext"`
	Model           string              `json:"model" validate:"omitempty,oneof=openai groq mistral huggingface"`
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func meaningHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meaningRequest
		if err := httputil.DecodeJSON(w, r, &req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		req.Word = strings.TrimSpace(req.Word)
		req.Language = normalize(req.Language)
		req.Model = normalize(req.Model)
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		lang, _ := language.Parse(req.Language)
		family, err := requestedFamily(req.Model)
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid model", err, http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		cacheFamily := string(family)
		if cacheFamily == "" {
			cacheFamily = normalize(deps.Config.DefaultProvider)
		}
		cacheKey := cache.GenerateCacheKey(req.Word, string(lang), cacheFamily)
		if cached, err := deps.Cache.GetLookup(ctx, cacheKey); err != nil {
			deps.Log.Warn("cache read failed", "err", err)
		} else if cached != nil {
			deps.Log.Info("cache hit", "word", req.Word, "language", lang)
			httputil.WriteJSON(w, http.StatusOK, orchestrator.StructuredAnswer(*cached))
			return
		}

		answer, err := deps.Assistant.Lookup(ctx, orchestrator.Query{
			Text:     req.Word,
			Language: lang,
			Provider: family,
		})
		if err != nil {
			httputil.Fail(deps.Log, w, unavailableMessage, err, http.StatusInternalServerError)
			return
		}

		result := cache.LookupResult(answer)
		if err := deps.Cache.SetLookup(ctx, cacheKey, &result, deps.Config.CacheTTLDuration()); err != nil {
			deps.Log.Warn("failed to cache result", "err", err)
		}
		httputil.WriteJSON(w, http.StatusOK, answer)
	}
}

func followUpHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req followUpRequest
		if err := httputil.DecodeJSON(w, r, &req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		req.Question = strings.TrimSpace(req.Question)
		req.Language = normalize(req.Language)
		req.Model = normalize(req.Model)
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		lang, _ := language.Parse(req.Language)
		family, err := requestedFamily(req.Model)
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid model", err, http.StatusBadRequest)
			return
		}

		answer, err := deps.Assistant.FollowUp(r.Context(), orchestrator.FollowUpQuery{
			Question: req.Question,
			Language: lang,
			History:  req.PreviousContext,
			Provider: family,
		})
		if err != nil {
			httputil.Fail(deps.Log, w, unavailableMessage, err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, answer)
	}
}

func requestedFamily(model string) (llm.Family, error) {
	if model == "" {
		return "", nil
	}
	return llm.ParseFamily(model)
}
