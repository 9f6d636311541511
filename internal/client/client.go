package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/models"
)

// Operation names, also used as busy keys.
const (
	OpLookup   = "lookup"
	OpGenerate = "generate"
	OpChat     = "chat"
)

// ErrBusy is returned when a call of the same kind is still in flight.
var ErrBusy = stderrors.New("client: request already in flight")

// Client calls the assistant endpoints of the function server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	inFlight map[string]bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
		inFlight:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a call of kind op is in flight.
func (c *Client) Busy(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[op]
}

func (c *Client) acquire(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[op] {
		return false
	}
	c.inFlight[op] = true
	return true
}

func (c *Client) release(op string) {
	c.mu.Lock()
	delete(c.inFlight, op)
	c.mu.Unlock()
}

// LookupWord fetches the dictionary card for word.
func (c *Client) LookupWord(ctx context.Context, word string) (models.WordData, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return models.WordData{}, errors.NewLookupError("word is required", nil)
	}
	if !c.acquire(OpLookup) {
		return models.WordData{}, ErrBusy
	}
	defer c.release(OpLookup)

	var data models.WordData
	if err := c.post(ctx, "/api/word-lookup", models.LookupRequest{Word: word}, &data); err != nil {
		return models.WordData{}, errors.NewLookupError("could not look up "+word, err)
	}
	if strings.TrimSpace(data.Word) == "" {
		return models.WordData{}, errors.NewLookupError("response has no word", nil)
	}
	return data, nil
}

// GeneratePracticeQuestions asks for a quiz about word. An empty list is an
// error because a session needs at least one question.
func (c *Client) GeneratePracticeQuestions(ctx context.Context, word models.WordData) ([]models.Question, error) {
	if strings.TrimSpace(word.Word) == "" {
		return nil, errors.NewGenerationError("word is required", nil)
	}
	if !c.acquire(OpGenerate) {
		return nil, ErrBusy
	}
	defer c.release(OpGenerate)

	var set models.QuestionSet
	if err := c.post(ctx, "/api/practice", word.Context(), &set); err != nil {
		return nil, errors.NewGenerationError("could not generate questions", err)
	}
	if len(set.Questions) == 0 {
		return nil, errors.NewGenerationError("no questions generated", nil)
	}
	return set.Questions, nil
}

// SendChatMessage sends one chat turn along with the prior turns.
func (c *Client) SendChatMessage(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.NewChatError("message is required", nil)
	}
	if !c.acquire(OpChat) {
		return "", ErrBusy
	}
	defer c.release(OpChat)

	if history == nil {
		history = []models.ChatTurn{}
	}
	var reply models.ChatReply
	req := models.ChatRequest{Message: message, ConversationHistory: history}
	if err := c.post(ctx, "/api/chat", req, &reply); err != nil {
		return "", errors.NewChatError("could not get a reply", err)
	}
	if reply.Response == "" {
		return "", errors.NewChatError("empty reply", nil)
	}
	return reply.Response, nil
}

// ServerError is a non-2xx answer or an error envelope from the server.
type ServerError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("server status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	log := logger.FromContext(ctx).WithPrefix("client").WithField("path", path)

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	log.Debug("response in %v, status=%d", time.Since(start), resp.StatusCode)

	if serr := parseErrorEnvelope(resp.StatusCode, raw); serr != nil {
		log.Warn("server error: %v", serr)
		return serr
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Error("failed to decode response: %v", err)
		return err
	}
	return nil
}

// parseErrorEnvelope accepts both {"error":{"code","message"}} and {"error":"msg"}.
func parseErrorEnvelope(status int, raw []byte) *ServerError {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	_ = json.Unmarshal(raw, &env)

	ok := status >= 200 && status <= 299
	if ok && len(env.Error) == 0 {
		return nil
	}

	serr := &ServerError{StatusCode: status}
	var detail struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	var text string
	switch {
	case json.Unmarshal(env.Error, &detail) == nil && detail.Message != "":
		serr.Code, serr.Message = detail.Code, detail.Message
	case json.Unmarshal(env.Error, &text) == nil && text != "":
		serr.Message = text
	case ok:
		// An explicit null or empty error on a 2xx is not a failure.
		return nil
	default:
		serr.Message = strings.TrimSpace(string(raw))
		if len(serr.Message) > 200 {
			serr.Message = serr.Message[:200]
		}
	}
	return serr
}
