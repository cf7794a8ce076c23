package main

import (
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zwennpay/statements/src/config"
	"github.com/zwennpay/statements/src/handlers"
	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/processors"
	"github.com/zwennpay/statements/src/renderer"
	"github.com/zwennpay/statements/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Requested-With")
			w.Header().Set("Access-Control-Expose-Headers", "X-Batch-Id, X-Batch-Error-Count, Content-Disposition")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Statement generator server starting...")

	matcher := processors.NewMerchantMatcher(config.Cfg.MatchKeyMode)
	aggregator := processors.NewTotalsAggregator()

	statementRenderer := renderer.NewStatementRenderer(renderer.Options{
		CurrencyCode:        config.Cfg.CurrencyCode,
		VATRatePercent:      config.Cfg.VATRatePercent,
		LetterheadImagePath: config.Cfg.LetterheadImagePath,
		IssuerName:          config.Cfg.IssuerName,
		IssuerCity:          config.Cfg.IssuerCity,
		IssuerLicense:       config.Cfg.IssuerLicense,
		IssuerPhone:         config.Cfg.IssuerPhone,
		IssuerEmail:         config.Cfg.IssuerEmail,
	})

	notifier := services.NewStatementNotifier()
	packager := services.NewZipPackager()
	resultCache := cache.New(config.Cfg.BatchResultTTL, services.ResultCacheCleanupInterval)

	statementService := services.NewStatementService(
		matcher,
		aggregator,
		statementRenderer,
		notifier,
		packager,
		resultCache,
	)
	statementHandler := handlers.NewStatementHandler(statementService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/statements/generate", statementHandler.HandleGenerate)
	mux.HandleFunc("GET /api/statements/batches/{id}", statementHandler.HandleGetBatchResult)
	mux.HandleFunc("GET /health", statementHandler.HandleHealth)

	handler := enableCORS(rateLimitMiddleware(mux))

	server := &http.Server{
		Addr:    ":" + config.Cfg.Port,
		Handler: handler,
		// generous write timeout: a batch renders and zips inline
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	logger.L.Info("Server listening", "port", config.Cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Server failed", "error", err)
	}
}
