package chat

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/models"
	"github.com/vytor/wortflash/internal/services"
)

const (
	historyWindow        = 6
	DefaultMaxTranscript = 50
)

var (
	ErrEmptyMessage   = stderrors.New("chat: empty message")
	ErrBusy           = stderrors.New("chat: a message is already being sent")
	ErrQuotaExhausted = stderrors.New("chat: daily message limit reached")
	ErrSessionReset   = stderrors.New("chat: session was reset while waiting for the reply")
)

// Requester delivers one chat turn to the tutor.
type Requester interface {
	SendChatMessage(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}

// Option configures a Session.
type Option func(*Session)

// WithMaxTranscript bounds the number of kept messages. Oldest go first.
func WithMaxTranscript(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxTranscript = n
		}
	}
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is an open chat widget. The transcript lives only in memory.
type Session struct {
	mu            sync.Mutex
	requester     Requester
	quota         services.ChatQuotaService
	messages      []models.ChatMessage
	busy          bool
	epoch         uint64
	maxTranscript int
	now           func() time.Time
}

func NewSession(requester Requester, quota services.ChatQuotaService, opts ...Option) *Session {
	s := &Session{
		requester:     requester,
		quota:         quota,
		maxTranscript: DefaultMaxTranscript,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send charges one message against the daily quota, then asks the tutor.
// The user message stays in the transcript even when the request fails, and
// the charge is not refunded.
func (s *Session) Send(ctx context.Context, text string) (*models.ChatMessage, error) {
	log := logger.FromContext(ctx).WithPrefix("chat")

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if !s.quota.CanSendChatMessage(ctx) {
		s.mu.Unlock()
		log.Info("daily chat limit reached")
		return nil, ErrQuotaExhausted
	}

	history := s.historyLocked()
	s.appendLocked(models.RoleUser, text)
	s.busy = true
	epoch := s.epoch
	s.mu.Unlock()

	usage := s.quota.IncrementChatUsage(ctx)
	log.Debug("sending chat message (%d used today)", usage.Count)

	reply, err := s.requester.SendChatMessage(ctx, text, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		log.Debug("dropping reply for a closed chat")
		return nil, ErrSessionReset
	}
	s.busy = false

	if err != nil {
		if !errors.Is(err, errors.ErrChat) {
			err = errors.NewChatError("could not get a reply", err)
		}
		log.Warn("chat request failed: %v", err)
		return nil, err
	}

	msg := s.appendLocked(models.RoleAssistant, reply)
	return &msg, nil
}

func (s *Session) historyLocked() []models.ChatTurn {
	prior := s.messages
	if len(prior) > historyWindow {
		prior = prior[len(prior)-historyWindow:]
	}
	turns := make([]models.ChatTurn, len(prior))
	for i, m := range prior {
		turns[i] = m.Turn()
	}
	return turns
}

func (s *Session) appendLocked(role models.Role, content string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	if over := len(s.messages) - s.maxTranscript; over > 0 {
		s.messages = append([]models.ChatMessage(nil), s.messages[over:]...)
	}
	return msg
}

// Reset clears the transcript, as when the widget is closed. A reply still
// in flight is dropped when it arrives.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.busy = false
	s.epoch++
}

// Busy reports whether a send is awaiting its reply.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Messages returns a copy of the transcript, oldest first.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

// Remaining is the number of messages left today.
func (s *Session) Remaining(ctx context.Context) int {
	return s.quota.RemainingChatMessages(ctx)
}
