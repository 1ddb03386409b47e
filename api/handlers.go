package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// handleTopCoins responds with the highest-market-cap coins, ordered by
// market cap descending
func (s *Server) handleTopCoins(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit parameter must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	coins, err := s.fetcherService.TopCoins(r.Context(), limit)
	if err != nil {
		s.sendErrorResponse(w, err)
		return
	}

	s.sendJSONResponse(w, coins)
}

// handleCoinDetail responds with one coin's normalized detail record
func (s *Server) handleCoinDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Missing coin ID in path", http.StatusBadRequest)
		return
	}

	detail, err := s.fetcherService.CoinDetail(r.Context(), id)
	if err != nil {
		s.sendErrorResponse(w, err)
		return
	}

	s.sendJSONResponse(w, detail)
}

// handleCoinChart responds with a coin's price history as
// {timestamp, price} points
func (s *Server) handleCoinChart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Missing coin ID in path", http.StatusBadRequest)
		return
	}

	days := 7
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			http.Error(w, "days parameter must be a positive integer", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	points, err := s.fetcherService.CoinChart(r.Context(), id, days)
	if err != nil {
		s.sendErrorResponse(w, err)
		return
	}

	s.sendJSONResponse(w, points)
}

// handleSearch responds with raw search hits for a query
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "Parameter 'query' is required", http.StatusBadRequest)
		return
	}

	hits, err := s.fetcherService.Search(r.Context(), query)
	if err != nil {
		s.sendErrorResponse(w, err)
		return
	}

	s.sendJSONResponse(w, hits)
}

// handleSearchEnriched responds with search hits merged with full
// market summaries, preserving the search result order
func (s *Server) handleSearchEnriched(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "Parameter 'query' is required", http.StatusBadRequest)
		return
	}

	coins, err := s.fetcherService.SearchEnriched(r.Context(), query)
	if err != nil {
		s.sendErrorResponse(w, err)
		return
	}

	s.sendJSONResponse(w, coins)
}

// handleTrending responds with the trending coins list
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := s.fetcherService.Trending(r.Context())
	if err != nil {
		s.sendErrorResponse(w, err)
		return
	}

	s.sendJSONResponse(w, trending)
}

// handleRateLimit reports the rate-limit gate state so clients can
// show a countdown instead of re-issuing requests
func (s *Server) handleRateLimit(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.fetcherService.RateLimit())
}

// handleRateLimitRetry clears the gate once its countdown allows it
func (s *Server) handleRateLimitRetry(w http.ResponseWriter, r *http.Request) {
	accepted := s.fetcherService.RetryRateLimited()
	if !accepted {
		w.WriteHeader(http.StatusConflict)
	}
	s.sendJSONResponse(w, map[string]bool{"accepted": accepted})
}

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"coingecko": "unknown",
		},
	}

	if s.fetcherService.Healthy() {
		status["services"].(map[string]string)["coingecko"] = "up"
	}

	s.sendJSONResponse(w, status)
}
