package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coindash/market-data/fetcher"
)

type Server struct {
	port           string
	fetcherService *fetcher.Service
	hub            *wsHub
	server         *http.Server
}

func New(port string, fetcherService *fetcher.Service) *Server {
	return &Server{
		port:           port,
		fetcherService: fetcherService,
		hub:            newWSHub(fetcherService),
	}
}

func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/coins/top", s.handleTopCoins).Methods("GET")
	router.HandleFunc("/api/v1/coins/{id}/chart", s.handleCoinChart).Methods("GET")
	router.HandleFunc("/api/v1/coins/{id}", s.handleCoinDetail).Methods("GET")
	router.HandleFunc("/api/v1/search", s.handleSearch).Methods("GET")
	router.HandleFunc("/api/v1/search/enriched", s.handleSearchEnriched).Methods("GET")
	router.HandleFunc("/api/v1/trending", s.handleTrending).Methods("GET")
	router.HandleFunc("/api/v1/ratelimit", s.handleRateLimit).Methods("GET")
	router.HandleFunc("/api/v1/ratelimit/retry", s.handleRateLimitRetry).Methods("POST")
	router.HandleFunc("/api/v1/ws", s.hub.handleWS)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: router,
	}

	s.hub.start(ctx)

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
