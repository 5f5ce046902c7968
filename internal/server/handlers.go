package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/leapstack-labs/csvql/internal/engine"
	"github.com/leapstack-labs/csvql/pkg/parser"
)

// QueryIDHeader carries the ID assigned to each query request.
const QueryIDHeader = "X-Query-ID"

type queryRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(QueryIDHeader, id)

	var req queryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx := engine.WithQueryID(r.Context(), id)
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	res, err := s.engine.Query(ctx, req.Code)
	if err != nil {
		s.logger.Info("query failed", "query_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, res.Records)
}

func (s *Server) handleLanguage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, parser.DescribeLanguage())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
