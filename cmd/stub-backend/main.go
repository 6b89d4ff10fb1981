// Command stub-backend serves the orders/bookings REST contract for local
// development. It keeps everything in memory, deduplicates submissions by
// their Idempotency-Key header, and can be told to fail or rate-limit the
// first requests to exercise the client's retry policy.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/pkg/logging"
)

type config struct {
	HTTPPort string
	// FailFirst makes the first N order posts return 500.
	FailFirst int
	// RateLimitFirst makes the next N order posts return 429 with a hint.
	RateLimitFirst int
}

func loadConfig() config {
	return config{
		HTTPPort:       getEnv("HTTP_PORT", "8090"),
		FailFirst:      getEnvInt("FAIL_FIRST", 0),
		RateLimitFirst: getEnvInt("RATE_LIMIT_FIRST", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

type server struct {
	log *zap.Logger

	mu         sync.Mutex
	orders     map[string]domain.OrderReceipt // idempotency key -> receipt
	bookings   map[string]domain.BookingConfirmation
	orderSeq   int
	bookingSeq int
	failLeft   int
	limitLeft  int
}

func (s *server) createOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failLeft > 0 {
		s.failLeft--
		respondError(w, http.StatusInternalServerError, "simulated outage")
		return
	}
	if s.limitLeft > 0 {
		s.limitLeft--
		w.Header().Set("Retry-After", "2")
		respondError(w, http.StatusTooManyRequests, "simulated rate limit")
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		if receipt, seen := s.orders[key]; seen {
			s.log.Info("duplicate order collapsed", zap.String("idempotency_key", key))
			respondJSON(w, http.StatusOK, receipt)
			return
		}
	}

	var order domain.OrderSubmission
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(order.Items) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "order has no items")
		return
	}

	s.orderSeq++
	receipt := domain.OrderReceipt{
		ReceiptNumber: fmt.Sprintf("R-%04d", s.orderSeq),
		Order:         order,
	}
	if key != "" {
		s.orders[key] = receipt
	}

	s.log.Info("order accepted",
		zap.String("receipt", receipt.ReceiptNumber),
		zap.String("local_ref", order.LocalRef),
		zap.String("total", order.Total.String()))
	respondJSON(w, http.StatusCreated, receipt)
}

func (s *server) createBooking(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		if conf, seen := s.bookings[key]; seen {
			respondJSON(w, http.StatusOK, conf)
			return
		}
	}

	var booking domain.BookingSubmission
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if booking.ServiceRef == "" || booking.Date == "" || booking.Time == "" {
		respondError(w, http.StatusUnprocessableEntity, "booking is missing service, date or time")
		return
	}

	staff := booking.StaffRef
	if booking.Preference != domain.StaffSpecific || staff == "" {
		staff = "staff-auto"
	}

	s.bookingSeq++
	conf := domain.BookingConfirmation{
		BookingID:       fmt.Sprintf("B-%04d", s.bookingSeq),
		StaffRef:        staff,
		DurationMinutes: 30,
	}
	if key != "" {
		s.bookings[key] = conf
	}

	s.log.Info("booking accepted",
		zap.String("booking", conf.BookingID),
		zap.String("service", booking.ServiceRef))
	respondJSON(w, http.StatusCreated, conf)
}

func (s *server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	var body struct {
		PaymentStatus domain.PaymentStatus `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.log.Info("order status updated",
		zap.String("receipt", ref),
		zap.String("payment_status", string(body.PaymentStatus)))
	respondJSON(w, http.StatusOK, map[string]string{"receipt_number": ref, "status": "updated"})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func main() {
	cfg := loadConfig()

	log, err := logging.NewLogger("stub-backend", getEnv("ENV", "dev"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer log.Sync()

	s := &server{
		log:       log,
		orders:    make(map[string]domain.OrderReceipt),
		bookings:  make(map[string]domain.BookingConfirmation),
		failLeft:  cfg.FailFirst,
		limitLeft: cfg.RateLimitFirst,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/orders", s.createOrder)
		r.Patch("/orders/{ref}/status", s.updateOrderStatus)
		r.Post("/bookings", s.createBooking)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("stub backend starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	srv.Close()
}
