package guided

import (
	"strings"

	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

func textReady() string {
	return strings.Join([]string{
		"Две минуты, чтобы вернуться к себе.",
		"Пять коротких шагов, без спешки.",
		"",
		"Готова начать?",
	}, "\n")
}

func textGround() string {
	return strings.Join([]string{
		"Шаг 1 из 5.",
		"",
		"Почувствуй стопы.",
		"Как они стоят на полу. Вес, опора.",
		"Несколько секунд — просто это.",
	}, "\n")
}

func textBreath() string {
	return strings.Join([]string{
		"Шаг 2 из 5.",
		"",
		"Один медленный выдох.",
		"Длиннее вдоха. Не торопясь.",
	}, "\n")
}

func textAskLabel() string {
	return strings.Join([]string{
		"Шаг 3 из 5.",
		"",
		"Одним словом — что сейчас внутри?",
		"Напиши его текстом. Любое слово подойдёт.",
	}, "\n")
}

func textReflect(label string) string {
	if label == "" {
		return strings.Join([]string{
			"Шаг 4 из 5.",
			"",
			"То, что сейчас внутри, — уже названо тем, что ты здесь.",
			"Ему можно просто побыть. Без исправлений.",
		}, "\n")
	}
	return strings.Join([]string{
		"Шаг 4 из 5.",
		"",
		"«" + label + "» — услышала.",
		"Этому можно просто побыть здесь. Без исправлений.",
	}, "\n")
}

func textEaseAsk() string {
	return strings.Join([]string{
		"Шаг 5 из 5.",
		"",
		"Где стало хоть чуть легче?",
	}, "\n")
}

func textEaseAck(ease string) string {
	switch ease {
	case EaseBody:
		return "Тело заметило первым — так часто бывает.\nЭтого достаточно.\n\nХочешь ещё круг?"
	case EaseHead:
		return "Мысли стали чуть тише — это уже сдвиг.\nЭтого достаточно.\n\nХочешь ещё круг?"
	default:
		return "Не легче — тоже честный ответ.\nТы побыла с собой две минуты, это не мелочь.\n\nХочешь ещё круг?"
	}
}

func textDone() string {
	return strings.Join([]string{
		"Готово.",
		"Две минуты — и ты здесь.",
		"",
		"Хочешь ещё круг?",
	}, "\n")
}

func textPaused() string {
	return "Пауза.\nПродолжим, когда будешь готова."
}

func textClose() string {
	return "Хорошо.\nМомент закрыт.\nЯ рядом, если захочешь вернуться."
}

func kbReady() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Начать", Data: CbStart}},
		{{Text: "Не сейчас", Data: CbEnd}},
	}}
}

func kbStep() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Дальше", Data: CbNext}},
		{{Text: "Пауза", Data: CbPause}, {Text: "Завершить", Data: CbEnd}},
	}}
}

func kbLabel() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Пауза", Data: CbPause}, {Text: "Завершить", Data: CbEnd}},
	}}
}

func kbPaused() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Продолжить", Data: CbResume}},
		{{Text: "Завершить", Data: CbEnd}},
	}}
}

func kbEase() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "В теле", Data: cbEasePfx + EaseBody}, {Text: "В голове", Data: cbEasePfx + EaseHead}},
		{{Text: "Пока никак", Data: cbEasePfx + EaseNone}},
		{{Text: "Завершить", Data: CbEnd}},
	}}
}

func kbDone() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Ещё круг", Data: CbMore}},
		{{Text: "Завершить", Data: CbEnd}},
	}}
}
