package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/coindash/market-data/coingecko"
)

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	// Marshal the data to calculate content length and ETag
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// Calculate ETag (MD5 hash of the response)
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	// Set headers
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")

	// Write the response
	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

// sendErrorResponse renders any fetch failure as a JSON body carrying
// the upstream error shape. Rate-limited failures also set Retry-After.
func (s *Server) sendErrorResponse(w http.ResponseWriter, err error) {
	apiErr, ok := coingecko.AsAPIError(err)
	if !ok {
		apiErr = &coingecko.APIError{Message: err.Error()}
	}

	status := http.StatusBadGateway
	if apiErr.Status >= 400 {
		status = apiErr.Status
	}

	w.Header().Set("Content-Type", "application/json")
	if apiErr.IsRateLimit {
		w.Header().Set("Retry-After", strconv.Itoa(apiErr.RetryAfter))
	}
	w.WriteHeader(status)

	if encodeErr := json.NewEncoder(w).Encode(apiErr); encodeErr != nil {
		log.Printf("Error writing error response: %v", encodeErr)
	}
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.hub.stop()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
