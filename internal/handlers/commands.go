package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	u := h.ensureUser(msg.From)

	switch msg.Command() {
	case "start":
		h.send(u.ID, startText(), startMenu())
		h.send(u.ID, "Меню рядом 👇", mainMenu())
	case "moment":
		h.Guided.Enter(u.ID)
	case "support":
		h.Support.Enter(u.ID, u.Tone)
	default:
		h.send(u.ID, "Я здесь.\nЕсли нужно прямо сейчас — «Поддержка в моменте».", mainMenu())
	}
}
