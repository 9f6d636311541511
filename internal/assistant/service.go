package assistant

import (
	"context"
	"encoding/json"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/gateway"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/models"
	"github.com/vytor/wortflash/internal/worker"
)

const (
	exampleSentenceCount = 5
	historyWindow        = 6

	DefaultQuestionCount = 10
	DefaultCacheSize     = 256
)

// Service answers the three learner requests by prompting a language model.
type Service interface {
	LookupWord(ctx context.Context, word string) (models.WordData, error)
	GenerateQuestions(ctx context.Context, word models.WordContext) (models.QuestionList, error)
	Reply(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}

// Options tunes a Service. Zero values take the defaults.
type Options struct {
	QuestionCount int
	CacheSize     int
}

type service struct {
	completer     gateway.Completer
	pool          *worker.Pool
	questionCount int
	cache         *lru.Cache[string, models.WordData]
	lookups       singleflight.Group
}

// NewService creates a new Service. Upstream calls go through pool when it is
// non-nil, which caps how many run at once. A nil completer answers every
// request with NOT_CONFIGURED.
func NewService(completer gateway.Completer, pool *worker.Pool, opts Options) Service {
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = DefaultQuestionCount
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	cache, _ := lru.New[string, models.WordData](opts.CacheSize)
	return &service{
		completer:     completer,
		pool:          pool,
		questionCount: opts.QuestionCount,
		cache:         cache,
	}
}

func (s *service) complete(ctx context.Context, label string, messages []gateway.Message) (string, error) {
	if s.completer == nil {
		return "", errors.NewNotConfiguredError("API key")
	}
	job := &worker.CompletionJob{Completer: s.completer, Messages: messages, Label: label}
	var err error
	if s.pool != nil {
		err = s.pool.Do(ctx, job)
	} else {
		err = job.Run(ctx)
	}
	if err != nil {
		return "", err
	}
	return job.Output, nil
}

// upstreamError keeps AppErrors as they are and wraps anything else as a 502.
func upstreamError(message string, err error) error {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.NewUpstreamError(message, err)
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func (s *service) LookupWord(ctx context.Context, word string) (models.WordData, error) {
	word = strings.TrimSpace(word)
	log := logger.FromContext(ctx).WithPrefix("assistant").WithField("word", word)

	if word == "" {
		return models.WordData{}, errors.NewValidationError("word", "cannot be empty")
	}

	key := normalizeWord(word)
	if data, ok := s.cache.Get(key); ok {
		log.Debug("lookup cache hit")
		return data, nil
	}

	v, err, shared := s.lookups.Do(key, func() (any, error) {
		log.Info("looking up word")
		out, err := s.complete(ctx, "word_lookup", []gateway.Message{
			{Role: gateway.RoleUser, Content: lookupPrompt(word)},
		})
		if err != nil {
			log.Error("lookup completion failed: %v", err)
			return nil, upstreamError("failed to get response from AI", err)
		}

		data, err := decodeWordData(out)
		if err != nil {
			log.Error("lookup response unusable: %v", err)
			return nil, errors.NewUpstreamError("invalid response from AI", err)
		}

		s.cache.Add(key, data)
		return data, nil
	})
	if err != nil {
		return models.WordData{}, err
	}
	if shared {
		log.Debug("lookup shared with a concurrent caller")
	}
	return v.(models.WordData), nil
}

func decodeWordData(out string) (models.WordData, error) {
	raw, err := extractJSON(out)
	if err != nil {
		return models.WordData{}, err
	}
	var data models.WordData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return models.WordData{}, err
	}
	if strings.TrimSpace(data.Word) == "" {
		return models.WordData{}, errors.NewValidationError("word", "missing from model output")
	}
	if data.Article != nil {
		article := strings.ToLower(strings.TrimSpace(*data.Article))
		// Anything outside der/die/das (often "null" or "-") means no article.
		if models.IsArticle(article) {
			data.Article = &article
		} else {
			data.Article = nil
		}
	}
	if data.ExampleSentences == nil {
		data.ExampleSentences = []models.ExampleSentence{}
	}
	return data, nil
}

func (s *service) GenerateQuestions(ctx context.Context, word models.WordContext) (models.QuestionList, error) {
	log := logger.FromContext(ctx).WithPrefix("assistant").WithField("word", word.Word)

	if strings.TrimSpace(word.Word) == "" {
		return nil, errors.NewValidationError("word", "cannot be empty")
	}

	log.Info("generating %d practice questions", s.questionCount)
	out, err := s.complete(ctx, "practice_questions", []gateway.Message{
		{Role: gateway.RoleUser, Content: practicePrompt(word, s.questionCount)},
	})
	if err != nil {
		log.Error("question completion failed: %v", err)
		return nil, upstreamError("failed to generate questions", err)
	}

	raw, err := extractJSON(out)
	if err != nil {
		log.Error("question response unusable: %v", err)
		return nil, errors.NewUpstreamError("invalid response from AI", err)
	}
	var set models.QuestionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		log.Error("failed to decode questions: %v", err)
		return nil, errors.NewUpstreamError("invalid response from AI", err)
	}
	if set.Questions == nil {
		set.Questions = models.QuestionList{}
	}

	log.Info("generated %d questions", len(set.Questions))
	return set.Questions, nil
}

func (s *service) Reply(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("assistant")

	if strings.TrimSpace(message) == "" {
		return "", errors.NewValidationError("message", "cannot be empty")
	}

	messages := buildChatMessages(message, history)
	log.Debug("chat turn with %d history messages", len(messages)-2)

	out, err := s.complete(ctx, "chat", messages)
	if err != nil {
		log.Error("chat completion failed: %v", err)
		return "", upstreamError("failed to get response from AI", err)
	}
	return out, nil
}

// buildChatMessages keeps the last few history turns. Any role other than
// user is sent as assistant.
func buildChatMessages(message string, history []models.ChatTurn) []gateway.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]gateway.Message, 0, len(history)+2)
	messages = append(messages, gateway.Message{Role: gateway.RoleSystem, Content: tutorSystemPrompt})
	for _, turn := range history {
		role := gateway.RoleAssistant
		if turn.Role == models.RoleUser {
			role = gateway.RoleUser
		}
		messages = append(messages, gateway.Message{Role: role, Content: turn.Content})
	}
	return append(messages, gateway.Message{Role: gateway.RoleUser, Content: message})
}
