package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nataliaSk777/tochka-opory/internal/models"
	"github.com/nataliaSk777/tochka-opory/internal/payments"
)

// fastWords — короткие сигналы, на которые отвечаем сразу, без сценариев.
var fastWords = map[string]bool{
	"тяжело": true, "пусто": true, "не вывожу": true, "плохо": true,
	"устала": true, "страшно": true, "тревожно": true, "одиноко": true, "больно": true,
}

// heavyWords увеличивают счётчик тяжёлых самоотчётов.
var heavyWords = map[string]bool{"тяжело": true, "плохо": true, "устала": true}

func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message) {
	u := h.ensureUser(msg.From)
	text := msg.Text

	// сценарии первыми: они владеют своим куском сессии
	if h.Guided.HandleText(u.ID, text) {
		return
	}
	if h.Support.HandleText(u.ID, text) {
		return
	}

	s := h.Sessions.Get(u.ID)
	if s.AwaitingEmail {
		h.handleEmail(ctx, u, text)
		return
	}

	// кнопки главного меню приходят обычным текстом
	switch text {
	case menuMorning:
		h.deliverNow(u, models.SlotMorning)
		return
	case menuEvening:
		h.deliverNow(u, models.SlotEvening)
		return
	case menuGuided:
		h.Guided.Enter(u.ID)
		return
	case menuSupport:
		h.Support.Enter(u.ID, u.Tone)
		return
	case menuSub:
		h.showSubscription(u)
		return
	case menuTone:
		h.send(u.ID, "Как тебе лучше?", toneMenu())
		return
	case menuHow:
		h.send(u.ID, howText(), mainMenu())
		return
	}

	h.handleFreeText(u, text)
}

func (h *Handler) handleFreeText(u *models.User, text string) {
	t := strings.ToLower(strings.TrimSpace(text))

	if fastWords[t] {
		if heavyWords[t] {
			if err := h.DB.IncHeavyEvenings(u.ID); err != nil {
				h.Logger.Error("inc heavy failed", "user_id", u.ID, "error", err)
			}
		}
		h.send(u.ID, "Вижу.\nЕсли нужно прямо сейчас — нажми «Поддержка в моменте».\nЯ рядом.", mainMenu())
		return
	}

	switch t {
	case "утро", "🌅 утро":
		h.send(u.ID, "Приняла.\nУтро будет мягким и коротким.\nЯ рядом.", mainMenu())
		return
	case "вечер", "🌙 вечер":
		h.send(u.ID, "Приняла.\nВечером можно будет отпустить день.\nЯ рядом.", mainMenu())
		return
	}

	h.send(u.ID, "Я здесь.\nЕсли нужно прямо сейчас — «Поддержка в моменте».\nИли просто молчим рядом.", mainMenu())
}

// deliverNow serves an interactive «дай сообщение сейчас» request.
func (h *Handler) deliverNow(u *models.User, slot models.Slot) {
	sent, err := h.Engine.DeliverTo(u, slot)
	if err != nil {
		h.Logger.Error("interactive delivery failed", "user_id", u.ID, "slot", slot, "error", err)
		h.send(u.ID, "Не получилось отправить сообщение.\nПопробуй ещё раз чуть позже.", mainMenu())
		return
	}
	if !sent {
		h.showSubscription(u)
	}
}

func (h *Handler) handleEmail(ctx context.Context, u *models.User, text string) {
	email := strings.TrimSpace(text)
	if !payments.ValidEmail(email) {
		// ошибка ввода, не системная: просто переспрашиваем
		h.send(u.ID, "Кажется, в адресе опечатка.\nНапиши e-mail ещё раз, например name@example.com.", nil)
		return
	}

	s := h.Sessions.Get(u.ID)
	s.AwaitingEmail = false

	url, err := h.Payments.CreateSubscription(ctx, u.ID, email)
	if err != nil {
		h.Logger.Error("create subscription failed", "user_id", u.ID, "error", err)
		h.send(u.ID, "Не получилось создать оплату.\nПопробуй ещё раз чуть позже — я рядом.", mainMenu())
		return
	}

	h.send(u.ID, "Ссылка на оплату:\n"+url+"\n\nПосле оплаты я напишу сюда сама.", mainMenu())
}
