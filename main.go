package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"sevabook/auth"
	"sevabook/booking"
	"sevabook/config"
	"sevabook/db"
	"sevabook/notify"
	"sevabook/ratelim"
	"sevabook/rdx"
	"sevabook/routes"
	"sevabook/store"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.RequestURI,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg config.Config) *httprouter.Router {
	users := store.NewMongoUserStore(db.UserCollection)
	bookings := store.NewMongoBookingStore(db.BookingsCollection)
	slots := store.NewMongoSlotStore(db.SlotCollection)

	notifier := notify.New(notify.Config{
		AccountSID:  cfg.TwilioAccountSID,
		AuthToken:   cfg.TwilioAuthToken,
		From:        cfg.TwilioFrom,
		CountryCode: cfg.CountryCode,
	})

	engine := &booking.Engine{
		Users:    users,
		Bookings: bookings,
		Slots:    slots,
		Notifier: notifier,
		Capacity: cfg.SlotCapacity,
	}

	rateLimiter := ratelim.NewRateLimiter(5, 10)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddAuthRoutes(router, auth.NewHandler(users), rateLimiter)
	routes.AddBookingRoutes(router, booking.NewHandler(engine), rateLimiter)
	routes.AddStaticRoutes(router)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB); err != nil {
		cancel()
		logrus.WithError(err).Fatal("mongo connect failed")
	}
	if err := rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
		// Cache only; booking lookups fall back to Mongo.
		logrus.WithError(err).Warn("redis unavailable, booking cache disabled")
	}
	cancel()

	router := setupRouter(cfg)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logrus.Info("shutdown signal received; shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("graceful shutdown failed")
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("mongo disconnect failed")
	}

	logrus.Info("server stopped cleanly")
}
