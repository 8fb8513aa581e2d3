package support

import (
	"log/slog"
	"strings"
	"time"

	"github.com/nataliaSk777/tochka-opory/internal/content"
	"github.com/nataliaSk777/tochka-opory/internal/models"
	"github.com/nataliaSk777/tochka-opory/internal/session"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

// Callback payloads. Всё, что начинается с "SM_", принадлежит этому сценарию.
const (
	cbPrefix   = "SM_"
	CbSoften   = "SM_SOFTEN"
	CbStay     = "SM_STAY"
	CbCancel   = "SM_CANCEL"
	CbSkip     = "SM_SKIP"
	cbLabelPfx = "SM_LBL_"
)

// LockTTL гасит двойные нажатия по одной и той же кнопке.
const LockTTL = 900 * time.Millisecond

const maxLabelLen = 28

// Machine drives the «Поддержка в моменте» flow.
type Machine struct {
	sessions *session.Store
	sender   telegram.Sender
	logger   *slog.Logger
	now      func() time.Time
}

func New(sessions *session.Store, sender telegram.Sender, logger *slog.Logger) *Machine {
	return &Machine{
		sessions: sessions,
		sender:   sender,
		logger:   logger.With("component", "support"),
		now:      time.Now,
	}
}

// Enter opens the flow with the user's current tone snapshotted.
func (m *Machine) Enter(userID int64, tone models.Tone) {
	s := m.sessions.Get(userID)
	s.ResetSupport()
	s.Support.Step = session.SupportEntry
	s.Support.Tone = models.NormalizeTone(string(tone))
	m.send(userID, textEntry(), kbEntry())
}

// HandleCallback consumes SM_* payloads. Дубль того же нажатия в окне
// блокировки подтверждается на уровне callback, но сообщений не порождает.
func (m *Machine) HandleCallback(userID int64, data string) bool {
	if !strings.HasPrefix(data, cbPrefix) {
		return false
	}

	s := m.sessions.Get(userID)
	if !s.AcquireLock("cb:"+data, LockTTL, m.now()) {
		return true
	}

	switch {
	case data == CbCancel:
		s.ResetSupport()
		m.send(userID, "Ок. Я рядом. Если понадобится — нажми «Поддержка в моменте».", nil)

	case data == CbStay:
		s.ResetSupport()
		m.send(userID, textStay(), nil)

	case data == CbSoften:
		s.Support.Step = session.SupportLabel
		m.send(userID, textAskLabel(), kbLabel())

	case data == CbSkip:
		m.finish(userID, s, "")

	case strings.HasPrefix(data, cbLabelPfx):
		m.finish(userID, s, strings.TrimPrefix(data, cbLabelPfx))

	default:
		// неизвестный SM_-payload: сценарий свой, событие не теряем
		m.send(userID, textEntry(), kbEntry())
	}
	return true
}

// HandleText consumes free text typed on the label step.
func (m *Machine) HandleText(userID int64, text string) bool {
	s := m.sessions.Get(userID)
	if s.Support.Step != session.SupportLabel {
		return false
	}

	label := strings.TrimSpace(text)
	if runes := []rune(label); len(runes) > maxLabelLen {
		label = string(runes[:maxLabelLen])
	}
	m.finish(userID, s, label)
	return true
}

// finish resolves the micro-action, sends it with the closing line and
// resets the flow.
func (m *Machine) finish(userID int64, s *session.Session, label string) {
	tone := s.Support.Tone
	s.ResetSupport()
	m.send(userID, content.MicroAction(label, tone), nil)
	m.send(userID, textClose(), nil)
}

func (m *Machine) send(userID int64, text string, markup *telegram.Markup) {
	if err := m.sender.Send(userID, text, markup); err != nil {
		m.logger.Error("send failed", "user_id", userID, "error", err)
	}
}

func textEntry() string {
	return strings.Join([]string{
		"Я здесь.",
		"Сейчас можно без объяснений.",
		"",
		"Хочешь сделать это состояние на 5% мягче?",
	}, "\n")
}

func textStay() string {
	return strings.Join([]string{
		"Хорошо.",
		"Мы просто здесь.",
		"Ничего не нужно делать.",
		"",
		"Я рядом.",
	}, "\n")
}

func textAskLabel() string {
	return strings.Join([]string{
		"Одним словом — как это сейчас?",
		"",
		"Можно выбрать кнопку. Можно пропустить.",
	}, "\n")
}

func textClose() string {
	return strings.Join([]string{
		"Микросдвиг сделан.",
		"Этого достаточно.",
		"",
		"Дальше можно жить шагом.",
	}, "\n")
}

func kbEntry() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Сделать на 5% мягче", Data: CbSoften}},
		{{Text: "Просто побудь рядом", Data: CbStay}},
		{{Text: "Отмена", Data: CbCancel}},
	}}
}

func kbLabel() *telegram.Markup {
	return &telegram.Markup{Inline: [][]telegram.Button{
		{{Text: "Усталость", Data: cbLabelPfx + "усталость"}, {Text: "Тревога", Data: cbLabelPfx + "тревога"}},
		{{Text: "Пусто", Data: cbLabelPfx + "пусто"}, {Text: "Перегруз", Data: cbLabelPfx + "перегруз"}},
		{{Text: "Злость", Data: cbLabelPfx + "злость"}, {Text: "Боль", Data: cbLabelPfx + "боль"}},
		{{Text: "Другое", Data: cbLabelPfx + "другое"}},
		{{Text: "Пропустить", Data: CbSkip}},
		{{Text: "Отмена", Data: CbCancel}},
	}}
}
