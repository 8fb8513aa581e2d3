package content

import (
	"strings"

	"github.com/nataliaSk777/tochka-opory/internal/models"
)

type microPack struct {
	soft    string
	brave   string
	neutral string
}

func (p microPack) forTone(t models.Tone) string {
	switch t {
	case models.ToneBrave:
		return p.brave
	case models.ToneNeutral:
		return p.neutral
	}
	return p.soft
}

// microActions — шесть канонических состояний, по три тона.
var microActions = map[string]microPack{
	"усталость": {
		soft:    "Ок. Сделаем на 5% мягче — усталость.\n\n60 секунд:\n1) Опусти плечи на миллиметр.\n2) Пусть живот станет мягче.\n3) Один длинный выдох.\n\nЯ рядом.",
		brave:   "Ок. Чуть облегчим — усталость.\n\n60 секунд:\n1) Выпрями спину на 2 сантиметра.\n2) Разожми пальцы. Дай рукам потеплеть.\n3) Выдох длиннее вдоха.\n\nЯ с тобой.",
		neutral: "Ок. Сделаем на 5% мягче — усталость.\n\n60 секунд:\n1) Плечи вниз на миллиметр.\n2) Ладони расслабь.\n3) Один длинный выдох.\n\nЯ здесь.",
	},
	"тревога": {
		soft:    "Ок. Сделаем на 5% мягче — тревога.\n\n60 секунд:\n1) Найди глазами 3 предмета вокруг.\n2) Почувствуй опору под стопами.\n3) Один длинный выдох.\n\nЯ рядом.",
		brave:   "Ок. Чуть облегчим — тревога.\n\n60 секунд:\n1) Назови про себя 3 цвета вокруг.\n2) Упрись стопами в пол на секунду.\n3) Длинный выдох через рот.\n\nЯ с тобой.",
		neutral: "Ок. Сделаем на 5% мягче — тревога.\n\n60 секунд:\n1) 3 предмета глазами.\n2) Ступни на полу.\n3) Один длинный выдох.\n\nЯ здесь.",
	},
	"перегруз": {
		soft:    "Ок. Сделаем на 5% мягче — перегруз.\n\n60 секунд:\n1) Скажи себе: “сейчас — только один шаг”.\n2) Разожми ладони.\n3) Выдох длиннее вдоха.\n\nЯ рядом.",
		brave:   "Ок. Чуть облегчим — перегруз.\n\n60 секунд:\n1) Выбери одно: “сейчас — только это”.\n2) Плечи назад и вниз на мгновение.\n3) Два выдоха подряд, не спеша.\n\nЯ с тобой.",
		neutral: "Ок. Сделаем на 5% мягче — перегруз.\n\n60 секунд:\n1) “Сейчас — один шаг”.\n2) Ладони разожми.\n3) Один длинный выдох.\n\nЯ здесь.",
	},
	"пусто": {
		soft:    "Ок. Сделаем на 5% мягче — пусто.\n\n60 секунд:\n1) Почувствуй опору сзади (стул/стена/подушка).\n2) Ладонь на грудь или живот.\n3) Один длинный выдох.\n\nЯ рядом.",
		brave:   "Ок. Чуть облегчим — пусто.\n\n60 секунд:\n1) Спина на опоре. Заметь контакт.\n2) Ладонь на грудь или живот.\n3) Выдох длиннее вдоха.\n\nЯ с тобой.",
		neutral: "Ок. Сделаем на 5% мягче — пусто.\n\n60 секунд:\n1) Опора сзади.\n2) Ладонь на грудь/живот.\n3) Один длинный выдох.\n\nЯ здесь.",
	},
	"злость": {
		soft:    "Ок. Сделаем на 5% мягче — злость.\n\n60 секунд:\n1) Сожми кулаки на 3 секунды — и отпусти.\n2) Отпусти челюсть.\n3) Выдох через рот, чуть длиннее.\n\nЯ рядом.",
		brave:   "Ок. Чуть облегчим — злость.\n\n60 секунд:\n1) Напряги руки на 2 секунды — отпусти.\n2) Плечи вниз.\n3) Два длинных выдоха.\n\nЯ с тобой.",
		neutral: "Ок. Сделаем на 5% мягче — злость.\n\n60 секунд:\n1) Кулаки на 3 секунды — отпусти.\n2) Челюсть мягче.\n3) Один длинный выдох.\n\nЯ здесь.",
	},
	"боль": {
		soft:    "Ок. Сделаем на 5% мягче — боль.\n\n60 секунд:\n1) Найди в теле место, где НЕ болит.\n2) Побудь вниманием там пару вдохов.\n3) Один длинный выдох.\n\nЯ рядом.",
		brave:   "Ок. Чуть облегчим — боль.\n\n60 секунд:\n1) Найди место, где спокойнее.\n2) Перенеси внимание туда.\n3) Выдох длиннее вдоха.\n\nЯ с тобой.",
		neutral: "Ок. Сделаем на 5% мягче — боль.\n\n60 секунд:\n1) Найди место без боли.\n2) Внимание туда.\n3) Один длинный выдох.\n\nЯ здесь.",
	},
}

// labelAliases сводит разговорные формулировки к каноническим состояниям.
var labelAliases = map[string]string{
	"устала":     "усталость",
	"плохо":      "усталость",
	"страшно":    "тревога",
	"тревожно":   "тревога",
	"одиноко":    "пусто",
	"пустота":    "пусто",
	"напряжение": "перегруз",
}

// MicroAction возвращает текст микро-действия для названного состояния.
// Функция тотальна: неизвестный или пустой ярлык получает общий шаблон,
// в котором дословно повторяется слово пользователя.
func MicroAction(label string, tone models.Tone) string {
	t := models.NormalizeTone(string(tone))
	raw := strings.ToLower(strings.TrimSpace(label))

	key := raw
	if canon, ok := labelAliases[raw]; ok {
		key = canon
	}

	if pack, ok := microActions[key]; ok {
		return pack.forTone(t)
	}
	return defaultMicroAction(raw, t)
}

func defaultMicroAction(label string, tone models.Tone) string {
	head := "Ок. Сделаем на 5% мягче."
	if label != "" {
		head = "Ок. Сделаем на 5% мягче — " + label + "."
	}
	tail := "Я рядом."
	switch tone {
	case models.ToneBrave:
		tail = "Я с тобой."
	case models.ToneNeutral:
		tail = "Я здесь."
	}
	return strings.Join([]string{
		head,
		"",
		"60 секунд:",
		"1) Почувствуй опору под стопами.",
		"2) Отпусти челюсть и плечи.",
		"3) Один длинный выдох.",
		"",
		tail,
	}, "\n")
}
