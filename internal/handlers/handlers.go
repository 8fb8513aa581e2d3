package handlers

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nataliaSk777/tochka-opory/internal/delivery"
	"github.com/nataliaSk777/tochka-opory/internal/guided"
	"github.com/nataliaSk777/tochka-opory/internal/metrics"
	"github.com/nataliaSk777/tochka-opory/internal/models"
	"github.com/nataliaSk777/tochka-opory/internal/payments"
	"github.com/nataliaSk777/tochka-opory/internal/session"
	"github.com/nataliaSk777/tochka-opory/internal/storage"
	"github.com/nataliaSk777/tochka-opory/internal/support"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

// Handler routes incoming telegram updates: сначала «Пройти момент», потом
// «Поддержка в моменте», потом общее меню и свободный текст.
type Handler struct {
	Client   telegram.Messenger
	DB       *storage.DB
	Sessions *session.Store
	Guided   *guided.Machine
	Support  *support.Machine
	Engine   *delivery.Engine
	Payments *payments.Service
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	PriceText string
}

// HandleUpdate is the single entry point for polled updates.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil && upd.Message.IsCommand():
		h.Metrics.IncomingUpdates.WithLabelValues("command").Inc()
		h.handleCommand(ctx, upd.Message)
	case upd.Message != nil:
		h.Metrics.IncomingUpdates.WithLabelValues("text").Inc()
		h.handleText(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		h.Metrics.IncomingUpdates.WithLabelValues("callback").Inc()
		h.handleCallback(ctx, upd.CallbackQuery)
	}
}

// ensureUser создаёт запись при первом контакте; настройки при повторном
// заходе не сбрасываются.
func (h *Handler) ensureUser(from *tgbotapi.User) *models.User {
	if err := h.DB.UpsertUser(from.ID, from.FirstName); err != nil {
		h.Logger.Error("upsert user failed", "user_id", from.ID, "error", err)
	}
	u, err := h.DB.GetUser(from.ID)
	if err != nil || u == nil {
		h.Logger.Error("get user failed", "user_id", from.ID, "error", err)
		return &models.User{ID: from.ID, FirstName: from.FirstName, Tone: models.ToneSoft, FreeMode: models.SlotMorning}
	}
	return u
}

func (h *Handler) send(userID int64, text string, markup *telegram.Markup) {
	if err := h.Client.Send(userID, text, markup); err != nil {
		h.Logger.Error("send failed", "user_id", userID, "error", err)
	}
}
