package handlers

import "github.com/nataliaSk777/tochka-opory/internal/telegram"

// Кнопки главного reply-меню.
const (
	menuMorning = "🌅 Утро"
	menuEvening = "🌙 Вечер"
	menuGuided  = "🧭 Пройти момент (2 минуты)"
	menuSupport = "🧷 Поддержка в моменте"
	menuSub     = "🔒 Подписка"
	menuTone    = "🌿 Тон"
	menuHow     = "ℹ️ Как это работает"
)

// Callback payloads общего меню.
const (
	cbTry3Days = "TRY_3DAYS"
	cbHow      = "HOW_IT_WORKS"
	cbPickTone = "PICK_TONE"
	cbTonePfx  = "TONE_"
	cbSubPay   = "SUB_PAY"
	cbSubFree  = "SUB_FREE"
)

func mainMenu() *telegram.Markup {
	return &telegram.Markup{Reply: [][]string{
		{menuMorning, menuEvening},
		{menuGuided, menuSupport},
		{menuSub, menuTone},
		{menuHow},
	}}
}

func startMenu() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Попробовать 3 дня", Data: cbTry3Days}},
		{{Text: "Выбрать тон", Data: cbPickTone}},
		{{Text: "Как это работает", Data: cbHow}},
	}}
}

func toneMenu() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "🌿 Очень мягко", Data: cbTonePfx + "soft"}},
		{{Text: "🔥 Чуть бодрее", Data: cbTonePfx + "brave"}},
		{{Text: "🫧 Нейтрально", Data: cbTonePfx + "neutral"}},
	}}
}

func paywallMenu() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Оформить подписку", Data: cbSubPay}},
		{{Text: "Остаться без подписки", Data: cbSubFree}},
	}}
}
