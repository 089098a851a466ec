package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rockettoken/chartbot/priceresolver"
)

// PriceResponse is the /api/v1/price payload
type PriceResponse struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Network   string    `json:"network"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// handlePrice resolves and returns the current price
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	price, err := s.resolver.CurrentPrice(r.Context())
	if err != nil {
		if errors.Is(err, priceresolver.ErrPriceNotFound) {
			s.sendErrorResponse(w, http.StatusServiceUnavailable, s.config.Messages.PriceFetchFailed)
			return
		}
		s.sendErrorResponse(w, http.StatusInternalServerError, s.config.Messages.PriceFetchFailed)
		return
	}

	token := s.resolver.TokenInfo()
	s.sendJSONResponse(w, PriceResponse{
		Symbol:    token.Symbol,
		Name:      token.Name,
		Address:   token.Address,
		Network:   token.Network,
		Price:     price,
		Timestamp: time.Now().UTC(),
	})
}

// handleToken returns the configured instrument details
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.resolver.TokenInfo())
}
