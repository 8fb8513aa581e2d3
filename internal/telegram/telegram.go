package telegram

import (
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Button is one inline action.
type Button struct {
	Text string
	Data string
}

// Markup describes an optional keyboard for an outgoing message: either
// inline actions, a persistent reply keyboard, or nothing.
type Markup struct {
	Inline [][]Button
	Reply  [][]string
}

// Sender is what the dialogue machines and the delivery engine need from
// the chat platform.
type Sender interface {
	Send(userID int64, text string, markup *Markup) error
}

// Messenger is the client surface the update handlers need: outgoing
// messages plus callback acknowledgements.
type Messenger interface {
	Sender
	AnswerCallback(callbackID string)
}

// Client wraps tgbotapi with a bounded retry policy: one повтор на сетевую
// ошибку, чтобы заблокировавший бота получатель не стопорил рассылку.
type Client struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewClient(bot *tgbotapi.BotAPI, logger *slog.Logger) *Client {
	return &Client{bot: bot, logger: logger.With("component", "telegram")}
}

// API exposes the underlying bot for update polling and callback answers.
func (c *Client) API() *tgbotapi.BotAPI { return c.bot }

func (c *Client) Send(userID int64, text string, markup *Markup) error {
	msg := tgbotapi.NewMessage(userID, text)
	if markup != nil {
		msg.ReplyMarkup = buildMarkup(markup)
	}

	_, err := c.bot.Send(msg)
	if err == nil {
		return nil
	}
	time.Sleep(300 * time.Millisecond)
	if _, retryErr := c.bot.Send(msg); retryErr == nil {
		return nil
	}
	return err
}

// AnswerCallback acknowledges a callback query so the client stops the
// loading spinner. Errors here are not actionable.
func (c *Client) AnswerCallback(callbackID string) {
	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		c.logger.Debug("answer callback failed", "error", err)
	}
}

func buildMarkup(m *Markup) interface{} {
	if len(m.Inline) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(m.Inline))
		for _, row := range m.Inline {
			btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
			rows = append(rows, btns)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	if len(m.Reply) > 0 {
		rows := make([][]tgbotapi.KeyboardButton, 0, len(m.Reply))
		for _, row := range m.Reply {
			btns := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				btns = append(btns, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, btns)
		}
		kb := tgbotapi.NewReplyKeyboard(rows...)
		kb.ResizeKeyboard = true
		return kb
	}
	return nil
}
