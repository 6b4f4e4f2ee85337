package models

import "unicode/utf8"

const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"
)

const (
	IntentStop     = "AMAZON.StopIntent"
	IntentCancel   = "AMAZON.CancelIntent"
	IntentHelp     = "AMAZON.HelpIntent"
	IntentFallback = "AMAZON.FallbackIntent"
)

const (
	Version        = "1.0"
	SpeechPlain    = "PlainText"
	MaxSpeechRunes = 7900
)

// Event описывает запрос голосовой платформы.
// См. https://developer.amazon.com/en-US/docs/alexa/custom-skills/request-and-response-json-reference.html
type Event struct {
	Request *Request `json:"request"`
	Version string   `json:"version,omitempty"`
}

type Request struct {
	Type   string  `json:"type"`
	Intent *Intent `json:"intent,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Response описывает ответ навыка.
type Response struct {
	Version           string          `json:"version"`
	SessionAttributes map[string]any  `json:"sessionAttributes"`
	Response          ResponsePayload `json:"response"`
}

type ResponsePayload struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewSpeech собирает ответ с простым текстом, обрезанным до MaxSpeechRunes символов.
func NewSpeech(text string, end bool) Response {
	return Response{
		Version:           Version,
		SessionAttributes: map[string]any{},
		Response: ResponsePayload{
			OutputSpeech: OutputSpeech{
				Type: SpeechPlain,
				Text: Clip(text, MaxSpeechRunes),
			},
			ShouldEndSession: end,
		},
	}
}

// Clip обрезает s до n символов (не байт).
func Clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
