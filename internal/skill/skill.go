package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"bitbucket.org/sotavant/alexa-aura-skill/internal/completion"
	"bitbucket.org/sotavant/alexa-aura-skill/internal/logger"
	"bitbucket.org/sotavant/alexa-aura-skill/internal/models"
	"go.uber.org/zap"
)

// Handler превращает одно событие голосовой платформы в один ответ.
// Состояния между вызовами нет.
type Handler struct {
	completer completion.Completer
	slotName  string
}

// New создаёт обработчик. slotName — имя слота с фразой пользователя;
// пустая строка означает, что такого слота платформа не задаёт.
func New(c completion.Completer, slotName string) *Handler {
	return &Handler{completer: c, slotName: slotName}
}

// Handle разбирает тело запроса и формирует ответ. Любая паника внутри
// превращается в ответ с извинением, поэтому вызывающий всегда получает Response.
func (h *Handler) Handle(ctx context.Context, body []byte) (resp models.Response) {
	defer func() {
		if p := recover(); p != nil {
			logger.Log.Error("recovered from panic while handling event",
				zap.Error(fmt.Errorf("panic: %v", p)),
				zap.Stack("stack"),
			)
			resp = models.NewSpeech(TextApology, false)
		}
	}()

	logger.Log.Debug("decoding event", zap.ByteString("body", body))

	var ev models.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		logger.Log.Debug("cannot decode event JSON body", zap.Error(err))
		return models.NewSpeech(TextMalformed, false)
	}

	return h.Dispatch(ctx, ev)
}

// Dispatch выбирает ответ по типу запроса и имени интента.
func (h *Handler) Dispatch(ctx context.Context, ev models.Event) models.Response {
	if ev.Request == nil || ev.Request.Type == "" {
		logger.Log.Debug("event without request type")
		return models.NewSpeech(TextMalformed, false)
	}

	switch ev.Request.Type {
	case models.TypeLaunchRequest:
		return models.NewSpeech(TextGreeting, false)
	case models.TypeIntentRequest:
		return h.intent(ctx, ev.Request.Intent)
	case models.TypeSessionEndedRequest:
		return models.NewSpeech(TextSessionEnded, true)
	}

	logger.Log.Debug("unsupported request type", zap.String("type", ev.Request.Type))
	return models.NewSpeech(TextUnknown, false)
}

func (h *Handler) intent(ctx context.Context, in *models.Intent) models.Response {
	var name string
	if in != nil {
		name = in.Name
	}

	switch name {
	case models.IntentStop, models.IntentCancel:
		return models.NewSpeech(TextFarewell, true)
	case models.IntentHelp:
		return models.NewSpeech(TextHelp, false)
	case models.IntentFallback:
		return models.NewSpeech(h.chat(ctx, h.Utterance(in)), false)
	}

	logger.Log.Debug("unsupported intent", zap.String("intent", name))
	return models.NewSpeech(TextUnsupported, false)
}

// chat вызывает сервис генерации. Ошибка не выходит наружу: пользователь
// слышит извинение, подробности остаются в логе.
func (h *Handler) chat(ctx context.Context, text string) string {
	if h.completer == nil {
		logger.Log.Error("completion client is not configured")
		return TextApology
	}

	reply, err := h.completer.Complete(ctx, Persona, text)
	if err != nil {
		logger.Log.Error("completion call failed", zap.Error(err))
		return TextApology
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		logger.Log.Error("completion returned blank text")
		return TextApology
	}

	return models.Clip(reply, models.MaxSpeechRunes)
}

// Utterance достаёт фразу пользователя из слотов интента.
// Сначала берётся слот с заданным именем, затем непустой слот с наименьшим
// по алфавиту именем; если ничего нет — PlaceholderUtterance.
func (h *Handler) Utterance(in *models.Intent) string {
	if in == nil || len(in.Slots) == 0 {
		return PlaceholderUtterance
	}

	if h.slotName != "" {
		if s, ok := in.Slots[h.slotName]; ok && s.Value != "" {
			return s.Value
		}
	}

	names := make([]string, 0, len(in.Slots))
	for n := range in.Slots {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if v := in.Slots[n].Value; v != "" {
			return v
		}
	}

	return PlaceholderUtterance
}
