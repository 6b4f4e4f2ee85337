package main

import (
	"encoding/json"
	"io"
	"net/http"

	"bitbucket.org/sotavant/alexa-aura-skill/internal/logger"
	"bitbucket.org/sotavant/alexa-aura-skill/internal/skill"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const healthText = "Aura Online"

type app struct {
	skill *skill.Handler
}

func newApp(h *skill.Handler) *app {
	return &app{skill: h}
}

func (a *app) router() chi.Router {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger, gzipMiddleware)

	r.Get("/", a.health)
	r.Post("/", a.webhook)

	return r
}

func (a *app) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, healthText)
}

// webhook всегда отвечает 200 и телом в формате SpeechResponse.
func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Log.Debug("cannot read request body", zap.Error(err))
		body = nil
	}

	resp := a.skill.Handle(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Error("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response")
}
