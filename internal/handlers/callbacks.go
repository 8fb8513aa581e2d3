package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nataliaSk777/tochka-opory/internal/delivery"
	"github.com/nataliaSk777/tochka-opory/internal/models"
)

func (h *Handler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	u := h.ensureUser(cq.From)
	data := cq.Data

	// сразу отвечаем на callback, чтобы снять «loading…»; дубли в окне
	// блокировки тоже получают ответ, но не сообщения
	h.Client.AnswerCallback(cq.ID)

	if h.Guided.HandleCallback(u.ID, data) {
		return
	}
	if h.Support.HandleCallback(u.ID, data) {
		return
	}

	switch {
	case data == cbTry3Days:
		if err := h.DB.StartTrial(u.ID); err != nil {
			h.Logger.Error("start trial failed", "user_id", u.ID, "error", err)
		}
		h.send(u.ID, "Ок.\n3 дня я буду рядом утром и вечером.\nБез давления.\nЕсли нужно прямо сейчас — нажми «Поддержка в моменте».", mainMenu())

	case data == cbHow:
		h.send(u.ID, howText(), mainMenu())

	case data == cbPickTone:
		h.send(u.ID, "Как тебе лучше?", toneMenu())

	case strings.HasPrefix(data, cbTonePfx):
		tone := models.NormalizeTone(strings.TrimPrefix(data, cbTonePfx))
		if err := h.DB.SetTone(u.ID, tone); err != nil {
			h.Logger.Error("set tone failed", "user_id", u.ID, "error", err)
		}
		names := map[models.Tone]string{
			models.ToneSoft:    "🌿 Очень мягко",
			models.ToneBrave:   "🔥 Чуть бодрее",
			models.ToneNeutral: "🫧 Нейтрально",
		}
		h.send(u.ID, "Принято. Тон: "+names[tone]+".", mainMenu())

	case data == cbSubPay:
		s := h.Sessions.Get(u.ID)
		s.AwaitingEmail = true
		h.send(u.ID, "Почти готово.\nНапиши e-mail для чека — и я пришлю ссылку на оплату.", nil)

	case data == cbSubFree:
		if err := h.DB.SetSubscribed(u.ID, false); err != nil {
			h.Logger.Error("set subscribed failed", "user_id", u.ID, "error", err)
		}
		if err := h.DB.SetFreeMode(u.ID, models.SlotMorning); err != nil {
			h.Logger.Error("set free mode failed", "user_id", u.ID, "error", err)
		}
		h.send(u.ID, "Поняла.\nЯ останусь в бесплатном режиме: только утро.\nЕсли захочешь вернуть полный ритуал — жми «Подписка».", mainMenu())
	}
}

// showSubscription renders the paywall screen with the derived status.
func (h *Handler) showSubscription(u *models.User) {
	active, err := h.DB.IsSubscriptionActive(u.ID, delivery.SubscriptionDays)
	if err != nil {
		h.Logger.Error("subscription status failed", "user_id", u.ID, "error", err)
	}
	h.send(u.ID, subText(active, h.PriceText), paywallMenu())
}
