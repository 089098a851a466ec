package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/rockettoken/chartbot/priceresolver"
)

// DefaultTimeframe is used when the request omits the timeframe parameter
const DefaultTimeframe = priceresolver.Timeframe7D

// handleChart generates a price chart PNG for the requested timeframe.
// The rendered artifact is deleted after streaming.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	timeframeParam := r.URL.Query().Get("timeframe")
	if timeframeParam == "" {
		timeframeParam = DefaultTimeframe.String()
	}

	// Timeframe tokens are case-sensitive: "1D" is rejected
	tf, err := priceresolver.ParseTimeframe(timeframeParam)
	if err != nil {
		s.sendErrorResponse(w, http.StatusBadRequest, s.config.Messages.InvalidTimeframe)
		return
	}

	series, err := s.resolver.PriceHistory(r.Context(), tf)
	if err != nil {
		if errors.Is(err, priceresolver.ErrPriceNotFound) {
			s.sendErrorResponse(w, http.StatusServiceUnavailable, s.config.Messages.PriceFetchFailed)
			return
		}
		s.sendErrorResponse(w, http.StatusInternalServerError, s.config.Messages.ChartGenerationFailed)
		return
	}

	path, err := s.renderer.Render(series, s.config.Token.Symbol, tf)
	if err != nil {
		log.Printf("API: chart render failed: %v", err)
		s.sendErrorResponse(w, http.StatusInternalServerError, s.config.Messages.ChartGenerationFailed)
		return
	}
	defer os.Remove(path)

	file, err := os.Open(path)
	if err != nil {
		s.sendErrorResponse(w, http.StatusInternalServerError, s.config.Messages.ChartGenerationFailed)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/png")
	if _, err := io.Copy(w, file); err != nil {
		log.Printf("API: error streaming chart: %v", err)
	}
}
