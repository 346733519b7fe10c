package server

import (
	"net/http"
	"strconv"

	"github.com/tinkerloft/promptshape/internal/knowledge"
	"github.com/tinkerloft/promptshape/internal/model"
)

func (s *Server) handleListKnowledge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.dispatcher.Corpus().Entries()})
}

func (s *Server) handleSearchKnowledge(w http.ResponseWriter, r *http.Request) {
	k := s.dispatcher.TopK()
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "k must be a positive integer")
			return
		}
		k = n
	}

	results := knowledge.RankScored(r.URL.Query().Get("q"), s.dispatcher.Corpus(), k)
	if results == nil {
		results = []model.RankedResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
