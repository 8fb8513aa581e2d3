package guided

import (
	"log/slog"
	"strings"

	"github.com/nataliaSk777/tochka-opory/internal/session"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

// Callback payloads. Всё, что начинается с "GM_", принадлежит этому сценарию.
const (
	cbPrefix  = "GM_"
	CbStart   = "GM_START"
	CbNext    = "GM_NEXT"
	CbPause   = "GM_PAUSE"
	CbResume  = "GM_RESUME"
	CbEnd     = "GM_END"
	CbMore    = "GM_MORE"
	cbEasePfx = "GM_EASE_"

	EaseBody = "body"
	EaseHead = "head"
	EaseNone = "none"
)

const maxLabelLen = 60

// Machine drives the 2-minute grounding exercise. Шаг не может идти назад;
// единственный путь назад — End и новый запуск.
type Machine struct {
	sessions *session.Store
	sender   telegram.Sender
	logger   *slog.Logger
}

func New(sessions *session.Store, sender telegram.Sender, logger *slog.Logger) *Machine {
	return &Machine{
		sessions: sessions,
		sender:   sender,
		logger:   logger.With("component", "guided"),
	}
}

// Enter starts (or restarts) the flow at step 0 with the ready-prompt.
func (m *Machine) Enter(userID int64) {
	s := m.sessions.Get(userID)
	s.ResetGuided()
	s.Guided.Active = true
	m.send(userID, textReady(), kbReady())
}

// HandleCallback consumes GM_* payloads. Returns false when the event is
// not for this machine.
func (m *Machine) HandleCallback(userID int64, data string) bool {
	if !strings.HasPrefix(data, cbPrefix) {
		return false
	}

	s := m.sessions.Get(userID)
	g := &s.Guided

	if !g.Active {
		// кнопка от старого сообщения
		m.send(userID, "Момент сейчас не запущен.\nЕсли хочешь — начнём заново: «🧭 Пройти момент (2 минуты)».", nil)
		return true
	}

	if data == CbEnd {
		s.ResetGuided()
		m.send(userID, textClose(), nil)
		return true
	}

	if g.Paused {
		if data == CbResume {
			g.Paused = false
			m.renderStep(userID, g)
			return true
		}
		// на паузе доступны только «Продолжить» и «Завершить»
		m.send(userID, textPaused(), kbPaused())
		return true
	}

	switch {
	case data == CbStart && g.Step == session.GuidedNotStarted:
		g.Step = session.GuidedGround
		m.renderStep(userID, g)

	case data == CbNext:
		m.advance(userID, g)

	case data == CbMore:
		// «Ещё круг» живёт только на финальном экране; кнопка из
		// прошлого круга текущий шаг не двигает
		if g.Step == session.GuidedDone {
			m.advance(userID, g)
		} else {
			m.renderStep(userID, g)
		}

	case data == CbPause:
		if g.Step >= session.GuidedGround && g.Step <= session.GuidedReflect {
			g.Paused = true
			m.send(userID, textPaused(), kbPaused())
		} else {
			m.renderStep(userID, g)
		}

	case strings.HasPrefix(data, cbEasePfx):
		if g.Step == session.GuidedEase {
			g.Ease = strings.TrimPrefix(data, cbEasePfx)
			g.Step = session.GuidedDone
			m.send(userID, textEaseAck(g.Ease), kbDone())
		} else {
			m.renderStep(userID, g)
		}

	default:
		// незнакомое событие — молчать нельзя, повторяем текущий шаг
		m.renderStep(userID, g)
	}
	return true
}

// HandleText consumes free text while the flow is active. Текст по-настоящему
// нужен только на шаге 3; в остальных случаях мягко возвращаем кнопки шага.
func (m *Machine) HandleText(userID int64, text string) bool {
	s := m.sessions.Get(userID)
	g := &s.Guided
	if !g.Active {
		return false
	}

	if g.Paused {
		m.send(userID, textPaused(), kbPaused())
		return true
	}

	if g.Step == session.GuidedLabel {
		label := truncateLabel(text)
		if label == "" {
			// стикер или пустой текст: ворота остаются закрытыми
			m.renderStep(userID, g)
			return true
		}
		g.Label = label
		g.Step = session.GuidedReflect
		m.renderStep(userID, g)
		return true
	}

	m.send(userID, "Пока можно без слов — просто кнопки ниже.", nil)
	m.renderStep(userID, g)
	return true
}

func (m *Machine) advance(userID int64, g *session.Guided) {
	switch g.Step {
	case session.GuidedGround:
		g.Step = session.GuidedBreath
	case session.GuidedBreath:
		g.Step = session.GuidedLabel
	case session.GuidedLabel:
		// жёсткие ворота: без текста дальше нельзя
		m.renderStep(userID, g)
		return
	case session.GuidedReflect:
		g.Step = session.GuidedEase
	case session.GuidedEase:
		g.Step = session.GuidedDone
	case session.GuidedDone:
		// круг заново, черновик чистим
		g.Label = ""
		g.Ease = ""
		g.Step = session.GuidedGround
	default:
		m.renderStep(userID, g)
		return
	}
	m.renderStep(userID, g)
}

func (m *Machine) renderStep(userID int64, g *session.Guided) {
	switch g.Step {
	case session.GuidedNotStarted:
		m.send(userID, textReady(), kbReady())
	case session.GuidedGround:
		m.send(userID, textGround(), kbStep())
	case session.GuidedBreath:
		m.send(userID, textBreath(), kbStep())
	case session.GuidedLabel:
		m.send(userID, textAskLabel(), kbLabel())
	case session.GuidedReflect:
		m.send(userID, textReflect(g.Label), kbStep())
	case session.GuidedEase:
		m.send(userID, textEaseAsk(), kbEase())
	case session.GuidedDone:
		m.send(userID, textDone(), kbDone())
	}
}

func (m *Machine) send(userID int64, text string, markup *telegram.Markup) {
	if err := m.sender.Send(userID, text, markup); err != nil {
		m.logger.Error("send failed", "user_id", userID, "error", err)
	}
}

func truncateLabel(text string) string {
	label := strings.TrimSpace(text)
	runes := []rune(label)
	if len(runes) > maxLabelLen {
		label = string(runes[:maxLabelLen])
	}
	return label
}
