package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tinkerloft/promptshape/internal/generate"
	"github.com/tinkerloft/promptshape/internal/model"
)

// QueryRequest is the body accepted by /prompt and /ask.
type QueryRequest struct {
	Query    string `json:"query"`
	Strategy string `json:"strategy"`
}

// PromptResponse is the shaped conversation without a model call.
type PromptResponse struct {
	Strategy     model.Strategy     `json:"strategy"`
	Fallback     bool               `json:"fallback"`
	Conversation model.Conversation `json:"conversation"`
}

// AskResponse carries a generated answer.
type AskResponse struct {
	ID       string         `json:"id"`
	Strategy model.Strategy `json:"strategy"`
	Answer   string         `json:"answer"`
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"strategies": model.Strategies()})
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"samples": model.SampleQuestions()})
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.dispatcher.Prepare(req.Query, req.Strategy)
	writeJSON(w, http.StatusOK, PromptResponse{
		Strategy:     res.Strategy,
		Fallback:     res.Fallback,
		Conversation: res.Conversation,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "no generation provider configured")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.dispatcher.Prepare(req.Query, req.Strategy)
	answer, err := s.generator.Generate(r.Context(), res.Conversation)
	if err != nil {
		slog.ErrorContext(r.Context(), "generation failed",
			"provider", s.generator.Provider(), "strategy", string(res.Strategy), "error", err)
		writeError(w, http.StatusBadGateway, generate.UserMessage(err))
		return
	}

	// Notification failures are logged only.
	if s.notifier != nil {
		if err := s.notifier.PostAnswer(r.Context(), req.Query, res.Strategy, answer); err != nil {
			slog.WarnContext(r.Context(), "failed to post answer", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, AskResponse{
		ID:       uuid.New().String(),
		Strategy: res.Strategy,
		Answer:   answer,
	})
}
