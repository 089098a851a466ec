package priceprovider

import (
	"context"
)

//go:generate mockgen -destination=mocks/provider.go -package=mocks . Provider

// Provider fetches the current USD price for the configured instrument.
// Implementations return an error for any transport, status, parse or
// validation problem; the resolver treats every error as a soft failure
// and advances to the next provider in the chain.
type Provider interface {
	// Name returns a short identifier used in logs and metrics
	Name() string
	// FetchPrice returns a strictly positive USD price or an error
	FetchPrice(ctx context.Context) (float64, error)
}
