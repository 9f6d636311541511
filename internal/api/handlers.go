package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vytor/wortflash/internal/assistant"
	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/models"
)

const maxBodyBytes = 64 << 10

// Check is a named readiness probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

type Server struct {
	Assistant      assistant.Service
	AllowedOrigins []string
	ReadyChecks    []Check
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return validateStruct(dst)
}

func (s *Server) handleWordLookup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req models.LookupRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("word lookup: %s", req.Word)

	data, err := s.Assistant.LookupWord(r.Context(), req.Word)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req models.WordContext
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("practice questions for: %s", req.Word)

	questions, err := s.Assistant.GenerateQuestions(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, models.QuestionSet{Questions: questions})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req models.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("chat message with %d history turns", len(req.ConversationHistory))

	reply, err := s.Assistant.Reply(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, models.ChatReply{Response: reply})
}
