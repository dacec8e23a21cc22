// Command corrector-web serves a browser page in front of a correction
// service.
//
// Usage:
//
//	corrector-web -addr :8080 -url http://localhost:5000
//	corrector-web -config ~/.config/corrector/config.yaml -transport browser
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Alfex4936/corrector/corrector"
	"github.com/Alfex4936/corrector/internal/config"
	"github.com/Alfex4936/corrector/internal/logx"
	"github.com/Alfex4936/corrector/internal/net"
	"github.com/Alfex4936/corrector/internal/web"
)

func main() {
	configPath := flag.String("config", envOr("CORRECTOR_CONFIG", config.DefaultConfigPath()), "config file (TOML, or YAML by extension)")
	addr := flag.String("addr", "", "listen address (default from config, then :8080)")
	baseURL := flag.String("url", "", "correction service base URL")
	timeout := flag.Duration("timeout", 0, "per-request timeout")
	transport := flag.String("transport", "", "transport: std | browser")
	logLevel := flag.String("log-level", "", "log level: debug | info | warn | error")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	override(&settings.Addr, *addr)
	override(&settings.BaseURL, *baseURL)
	override(&settings.Transport, *transport)
	override(&settings.LogLevel, *logLevel)
	if *timeout > 0 {
		settings.Timeout = *timeout
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logx.New(os.Stderr, settings.LogLevel)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	tr, err := net.New(settings.Transport, settings.Timeout)
	if err != nil {
		log.Fatalf("transport: %v", err)
	}
	client := corrector.New(tr, nil,
		corrector.WithBaseURL(settings.BaseURL),
		corrector.WithTimeout(settings.Timeout),
		corrector.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              settings.Addr,
		Handler:           web.NewServer(client, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("corrector-web listening on %s\n", settings.Addr)
	log.Printf("   upstream : POST %s (transport=%s timeout=%s)\n", client.Endpoint(), settings.Transport, settings.Timeout)
	log.Printf("   GET  /        (page)\n")
	log.Printf("   POST /check   (form)\n")
	log.Printf("   GET  /health\n")
	log.Fatal(srv.ListenAndServe())
}

func override(target *string, v string) {
	if v != "" {
		*target = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
