package handlers

import "strings"

func startText() string {
	return strings.Join([]string{
		"Я — «Точка опоры».",
		"Я буду писать тебе утром и вечером.",
		"Без советов. Без давления.",
		"Просто рядом, чтобы стало чуть легче.",
		"",
		"Можно писать коротко: «тяжело», «пусто», «не вывожу», «утро», «вечер».",
		"И можно нажать «Поддержка в моменте», если нужно прямо сейчас.",
	}, "\n")
}

func howText() string {
	return strings.Join([]string{
		"Два сообщения в день: утро и вечер.",
		"Тон — мягкий или чуть бодрее.",
		"Без оценок и “плана действий”.",
		"",
		"«Поддержка в моменте» — когда нужно прямо сейчас.",
		"«Пройти момент» — две минуты, чтобы вернуться к себе.",
		"Это не терапия и не диагностика.",
		"Это бережное присутствие и простая опора.",
	}, "\n")
}

func subText(active bool, priceText string) string {
	mode := "🔒 Подписка не активна."
	if active {
		mode = "✅ Подписка активна."
	}
	return strings.Join([]string{
		mode,
		"",
		"Подписка даёт:",
		"• утро + вечер",
		"• выбранный тон",
		"• иногда “неожиданное рядом”",
		"",
		"Цена: " + priceText + " — как кофе, но теплее.",
		"",
		"Если тебе хоть иногда становилось чуть легче — я могу быть рядом дальше.",
	}, "\n")
}
