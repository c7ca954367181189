package webhook

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"cryptonews-telegram-bot/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Path is where telegram posts updates.
const Path = "/webhook"

// maxBodySize caps a single update payload.
const maxBodySize = 1 << 20

type Dispatcher interface {
	HandleUpdate(ctx context.Context, u tgbotapi.Update)
}

type Handler struct {
	dispatcher Dispatcher
	metrics    *metrics.BotMetrics
}

func NewHandler(d Dispatcher, m *metrics.BotMetrics) *Handler {
	return &Handler{dispatcher: d, metrics: m}
}

// ServeHTTP accepts JSON updates and dispatches them synchronously.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.respond(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		log.Warnf("Rejected webhook call with content type %q", r.Header.Get("Content-Type"))
		h.respond(w, http.StatusForbidden, "Invalid request")
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&update); err != nil {
		log.Warnf("Malformed webhook update: %v", err)
		h.respond(w, http.StatusBadRequest, "Malformed update")
		return
	}

	log.WithField("update_id", update.UpdateID).Debug("Received update")
	h.dispatcher.HandleUpdate(r.Context(), update)

	h.respond(w, http.StatusOK, "")
}

func (h *Handler) respond(w http.ResponseWriter, code int, body string) {
	if h.metrics != nil {
		h.metrics.WebhookRequests.WithLabelValues(strconv.Itoa(code)).Inc()
	}

	w.WriteHeader(code)
	if body != "" {
		w.Write([]byte(body))
	}
}
