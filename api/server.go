package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rockettoken/chartbot/config"
	"github.com/rockettoken/chartbot/priceresolver"
)

// PriceResolver is the resolution capability the server depends on
type PriceResolver interface {
	CurrentPrice(ctx context.Context) (float64, error)
	PriceHistory(ctx context.Context, tf priceresolver.Timeframe) (priceresolver.PriceSeries, error)
	TokenInfo() config.Token
	Healthy() bool
}

// ChartRenderer renders a series to a PNG file and returns its path.
// The caller owns the file and must delete it.
type ChartRenderer interface {
	Render(series priceresolver.PriceSeries, symbol string, tf priceresolver.Timeframe) (string, error)
}

type Server struct {
	config   *config.Config
	resolver PriceResolver
	renderer ChartRenderer
	server   *http.Server
}

func New(cfg *config.Config, resolver PriceResolver, renderer ChartRenderer) *Server {
	return &Server{
		config:   cfg,
		resolver: resolver,
		renderer: renderer,
	}
}

// Start implements core.Interface; the listener runs in its own goroutine
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: s.Router(),
	}

	log.Printf("Server starting at http://localhost:%s", s.config.Port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Router builds the HTTP routes; exposed for handler tests
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleHome).Methods("GET")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	router.HandleFunc("/api/v1/price", s.handlePrice).Methods("GET")
	router.HandleFunc("/api/v1/token", s.handleToken).Methods("GET")
	router.HandleFunc("/api/v1/chart", s.handleChart).Methods("GET")

	return router
}
