package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/semih007/gradecalc/internal/app"
	"github.com/semih007/gradecalc/internal/handlers"
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "path to the TOML config")
	addr := flag.String("addr", "", "listen address, overrides [server] addr")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to start: %v", err)
	}
	defer service.Close()

	if *addr != "" {
		service.Config.Server.Addr = *addr
	}

	r := handlers.NewHandler(service).Routes()
	r.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting gradecalc bridge on %s", service.Config.Server.Addr)
	logger.Debug.Println("Requiring headers:")
	for _, h := range service.Config.Server.RequiredHeaders {
		logger.Debug.Printf("  %s: %s", h.Name, h.Value)
	}
	if err := http.ListenAndServe(service.Config.Server.Addr, r); err != nil {
		logger.Error.Fatalf("Gradecalc bridge failed: %v", err)
	}
}
