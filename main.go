package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rockettoken/chartbot/api"
	"github.com/rockettoken/chartbot/cache"
	"github.com/rockettoken/chartbot/chart"
	"github.com/rockettoken/chartbot/config"
	"github.com/rockettoken/chartbot/core"
	"github.com/rockettoken/chartbot/priceprovider"
	"github.com/rockettoken/chartbot/priceresolver"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	// Provider chain in fixed priority order: Jupiter, DexScreener, Birdeye
	providers := []priceprovider.Provider{
		priceprovider.NewJupiterClient(cfg),
		priceprovider.NewDexScreenerClient(cfg),
		priceprovider.NewBirdeyeClient(cfg),
	}

	priceCache := cache.NewGoCache(cfg.Resolver.PriceTTL, 2*cfg.Resolver.PriceTTL)
	resolver := priceresolver.NewService(cfg, providers, priceCache)
	renderer := chart.NewRenderer(cfg)
	server := api.New(cfg, resolver, renderer)

	registry := core.NewRegistry()
	registry.Register(resolver)
	registry.Register(server)

	if err := registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}
	defer registry.StopAll()

	log.Printf("%s token chart bot started", cfg.Token.Symbol)
	<-ctx.Done()
}
