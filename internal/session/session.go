package session

import (
	"sync"
	"time"

	"github.com/nataliaSk777/tochka-opory/internal/models"
)

// GuidedStep — шаг «Пройти момент». 0 — не начат, 1..5 — упражнение,
// 6 — финал с предложением повторить.
type GuidedStep int

const (
	GuidedNotStarted GuidedStep = iota
	GuidedGround
	GuidedBreath
	GuidedLabel
	GuidedReflect
	GuidedEase
	GuidedDone
)

// Guided holds per-user state of the guided moment flow.
type Guided struct {
	Active bool
	Step   GuidedStep
	Paused bool
	Label  string // захваченное слово с шага 3, ≤60 символов
	Ease   string // body | head | none
}

// SupportStep — шаг «Поддержка в моменте».
type SupportStep string

const (
	SupportIdle  SupportStep = "idle"
	SupportEntry SupportStep = "entry"
	SupportLabel SupportStep = "label"
)

// Support holds per-user state of the support moment flow.
type Support struct {
	Step SupportStep
	Tone models.Tone // тон, зафиксированный на входе
}

// Session is all transient per-user state. It never outlives an explicit
// end and is owned exclusively by that user's updates.
type Session struct {
	Guided  Guided
	Support Support

	// Ожидаем e-mail для чека перед созданием платежа.
	AwaitingEmail bool

	locks map[string]time.Time
}

// AcquireLock takes a short-lived per-action lock. Returns false while a
// previous acquisition of the same key has not expired yet.
func (s *Session) AcquireLock(key string, ttl time.Duration, now time.Time) bool {
	if s.locks == nil {
		s.locks = make(map[string]time.Time)
	}
	if until, ok := s.locks[key]; ok && until.After(now) {
		return false
	}
	s.locks[key] = now.Add(ttl)
	return true
}

// ResetGuided clears the guided flow back to inactive.
func (s *Session) ResetGuided() {
	s.Guided = Guided{}
}

// ResetSupport returns the support flow to idle, keeping the tone snapshot.
func (s *Session) ResetSupport() {
	s.Support = Support{Step: SupportIdle, Tone: s.Support.Tone}
}

// Store keeps sessions keyed by user id. In-memory: restart loses in-flight
// guided/support sessions, which are short and re-enterable.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for userID, creating it on first touch.
func (st *Store) Get(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok {
		s = &Session{Support: Support{Step: SupportIdle, Tone: models.ToneSoft}}
		st.sessions[userID] = s
	}
	return s
}
