package content

import "github.com/nataliaSk777/tochka-opory/internal/models"

// Morning — утренние сообщения. Базовый текст — мягкий тон.
var Morning = []Variant{
	{
		ID:   "m01",
		Text: "Доброе утро.\nСегодня можно не спешить.\nОдин шаг — уже достаточно.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Доброе утро.\nДень твой. Один шаг — и он уже начался.\nЯ с тобой.",
			models.ToneNeutral: "Доброе утро.\nОдин шаг за раз.\nЯ здесь.",
		},
	},
	{
		ID:   "m02",
		Text: "Утро.\nНе обязательно быть сильной прямо сейчас.\nМожно просто быть.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Утро.\nСилы придут по ходу. Начни с малого.\nЯ с тобой.",
			models.ToneNeutral: "Утро.\nМожно просто быть.\nЯ здесь.",
		},
	},
	{
		ID:   "m03",
		Text: "Доброе утро.\nЕсли тяжело — это не навсегда.\nСегодня достаточно маленького.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Доброе утро.\nТяжесть — не приговор. Маленькое сегодня — уже победа.\nЯ с тобой.",
			models.ToneNeutral: "Доброе утро.\nДостаточно маленького.\nЯ здесь.",
		},
	},
	{
		ID:   "m04",
		Text: "Утро пришло.\nМожно начать с одного глубокого выдоха.\nОстальное — потом.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave: "Утро пришло.\nОдин выдох — и вперёд. Потихоньку.\nЯ с тобой.",
		},
	},
	{
		ID:   "m05",
		Text: "Доброе утро.\nТы уже проснулась — это уже шаг.\nДальше — по силам.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Доброе утро.\nПервый шаг сделан. Остальные — по одному.\nЯ с тобой.",
			models.ToneNeutral: "Доброе утро.\nДальше — по силам.\nЯ здесь.",
		},
	},
	{
		ID:   "m06",
		Text: "Утро.\nСегодня можно выбрать только одно важное.\nОстальное подождёт.\nЯ рядом.",
	},
	{
		ID:   "m07",
		Text: "Доброе утро.\nЧашка чего-то тёплого — тоже забота о себе.\nНачни с неё.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave: "Доброе утро.\nТёплая чашка — и в путь.\nЯ с тобой.",
		},
	},
	{
		ID:   "m08",
		Text: "Утро.\nЕсли вчера было трудно — сегодня новый счёт.\nБез долгов перед собой.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneNeutral: "Утро.\nНовый день — новый счёт.\nЯ здесь.",
		},
	},
}

// Evening — вечерние сообщения.
var Evening = []Variant{
	{
		ID:   "e01",
		Text: "Вечер.\nДень можно отпустить.\nЧто было — было. Ты справилась.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Вечер.\nДень закрыт. Ты дотянула — это немало.\nЯ с тобой.",
			models.ToneNeutral: "Вечер.\nДень можно отпустить.\nЯ здесь.",
		},
	},
	{
		ID:   "e02",
		Text: "Добрый вечер.\nСейчас можно ничего не решать.\nПросто выдохнуть.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave: "Добрый вечер.\nРешения — завтра. Сейчас — выдох.\nЯ с тобой.",
		},
	},
	{
		ID:   "e03",
		Text: "Вечер.\nЕсли день был тяжёлым — это уже позади.\nНочь — для отдыха, не для счётов.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Вечер.\nТяжёлый день закончился. Точка.\nЯ с тобой.",
			models.ToneNeutral: "Вечер.\nДень позади.\nЯ здесь.",
		},
	},
	{
		ID:   "e04",
		Text: "Добрый вечер.\nМожно вспомнить одну маленькую хорошую вещь из дня.\nОдной достаточно.\nЯ рядом.",
	},
	{
		ID:   "e05",
		Text: "Вечер.\nПлечи вниз, челюсть мягче.\nДень сделал всё, что мог. И ты тоже.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneNeutral: "Вечер.\nПлечи вниз.\nДень сделан.\nЯ здесь.",
		},
	},
	{
		ID:   "e06",
		Text: "Добрый вечер.\nСегодняшние недоделки — это планы на завтра, а не провалы.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave: "Добрый вечер.\nНедоделки подождут. Ты — нет, тебе отдыхать.\nЯ с тобой.",
		},
	},
	{
		ID:   "e07",
		Text: "Вечер.\nМожно побыть в тишине.\nТишина — тоже поддержка.\nЯ рядом.",
	},
	{
		ID:   "e08",
		Text: "Добрый вечер.\nТы дожила до вечера — в трудные периоды это не мелочь.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Добрый вечер.\nДень выдержан. Это сила, даже если не чувствуется.\nЯ с тобой.",
			models.ToneNeutral: "Добрый вечер.\nДень выдержан.\nЯ здесь.",
		},
	},
}

// Bonus — «неожиданное рядом», только для подписчиков.
var Bonus = []Variant{
	{
		ID:   "b01",
		Text: "Просто напомню среди дня:\nты не одна.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave:   "Внеплановое:\nты справляешься лучше, чем думаешь.\nЯ с тобой.",
			models.ToneNeutral: "Среди дня:\nты не одна.\nЯ здесь.",
		},
	},
	{
		ID:   "b02",
		Text: "Маленькая пауза.\nОдин выдох — прямо сейчас.\nВот и всё, что нужно.\nЯ рядом.",
	},
	{
		ID:   "b03",
		Text: "Неожиданное рядом:\nесли сегодня трудно — это считается.\nТы считаешься.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneBrave: "Неожиданное рядом:\nтрудно — значит, ты в деле, а не в стороне.\nЯ с тобой.",
		},
	},
	{
		ID:   "b04",
		Text: "Между делами:\nплечи вниз на миллиметр.\nУже мягче.\nЯ рядом.",
	},
	{
		ID:   "b05",
		Text: "Просто так:\nты делаешь достаточно.\nДаже если кажется, что нет.\nЯ рядом.",
		Tones: map[models.Tone]string{
			models.ToneNeutral: "Просто так:\nты делаешь достаточно.\nЯ здесь.",
		},
	},
	{
		ID:   "b06",
		Text: "Середина дня.\nМожно на минуту никуда не спешить.\nЯ рядом.",
	},
}
