// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/sports-academy/internal/auth"
	"github.com/Shivanand-hulikatti/sports-academy/internal/cache"
	"github.com/Shivanand-hulikatti/sports-academy/internal/config"
	"github.com/Shivanand-hulikatti/sports-academy/internal/database"
	"github.com/Shivanand-hulikatti/sports-academy/internal/handler"
	"github.com/Shivanand-hulikatti/sports-academy/internal/logging"
	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/Shivanand-hulikatti/sports-academy/internal/payment"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository/memstore"
	"github.com/Shivanand-hulikatti/sports-academy/internal/service"
)

// stores groups one implementation of every store the services consume.
type stores struct {
	users        service.UserStore
	classes      service.ClassStore
	reservations service.ReservationStore
	payments     service.PaymentStore
	slides       service.SlideStore
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Storage ────────────────────────────────────────────────────────
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	// ── 2. Role cache ─────────────────────────────────────────────────────
	var roleCache auth.RoleCache
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		roleCache = cache.NewRoleCache(rdb, cfg.RoleCacheTTL)
		log.WithField("ttl", cfg.RoleCacheTTL).Info("role cache enabled")
	}

	// ── 3. Payment provider ───────────────────────────────────────────────
	provider, err := newProvider(cfg, log)
	if err != nil {
		return err
	}

	// ── 4. Wire up layers ─────────────────────────────────────────────────
	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.TokenTTL)
	resolver := auth.NewRoleResolver(st.users, roleCache, log)

	h := handler.New(handler.Deps{
		Tokens:     tokens,
		Roles:      resolver,
		Users:      service.NewUserService(st.users, resolver),
		Classes:    service.NewClassService(st.classes),
		Bookings:   service.NewBookingService(st.reservations, st.classes),
		Settlement: service.NewSettlementService(st.payments, st.reservations, provider, cfg.PaymentCurrency, log),
		Slides:     service.NewSlideService(st.slides),
		Log:        log,
	})

	limiter := handler.NewRateLimiter(cfg.TokenRateLimit, cfg.TokenRateBurst)
	go pruneLimiter(ctx, limiter)

	router := handler.NewRouter(h, handler.RouterOptions{
		CORSOrigins:  cfg.CORSOrigins,
		TokenLimiter: limiter,
		Log:          log,
	})

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg config.Config, log *logrus.Logger) (*stores, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		mem := memstore.New()
		mem.SeedSlides(demoSlides)
		log.Warn("using in-memory storage; data is lost on restart")
		return &stores{
			users:        mem.Users(),
			classes:      mem.Classes(),
			reservations: mem.Reservations(),
			payments:     mem.Payments(),
			slides:       mem.Slides(),
			close:        func() {},
		}, nil

	case config.StoragePostgres:
		if cfg.DB.Migrate {
			if err := database.Migrate(cfg.DB.URL("pgx5"), log); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPool(ctx, cfg.DB.DSN(), log)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		log.WithField("host", cfg.DB.Host).Info("connected to PostgreSQL")
		return &stores{
			users:        repository.NewUserRepository(pool),
			classes:      repository.NewClassRepository(pool),
			reservations: repository.NewReservationRepository(pool),
			payments:     repository.NewPaymentRepository(pool),
			slides:       repository.NewSlideRepository(pool),
			close:        pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newProvider(cfg config.Config, log *logrus.Logger) (service.ChargeProvider, error) {
	if cfg.PaymentSecretKey == "" {
		log.Warn("PAYMENT_SECRET_KEY not set; /create-payment-intent will return 502")
		return payment.Unconfigured{}, nil
	}
	switch cfg.PaymentProvider {
	case config.ProviderStripe:
		return payment.NewStripe(cfg.PaymentSecretKey), nil
	case config.ProviderOmise:
		p, err := payment.NewOmise(cfg.PaymentPublicKey, cfg.PaymentSecretKey, "")
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}

func pruneLimiter(ctx context.Context, l *handler.RateLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune(10000)
		}
	}
}

var demoSlides = []model.Slide{
	{ID: "summer-camp", Title: "Summer Camp 2026", Subtitle: "Six weeks of sport for ages 8 to 16", Position: 1},
	{ID: "football", Title: "Junior Football", Subtitle: "Small-sided games with licensed coaches", Position: 2},
	{ID: "swimming", Title: "Learn to Swim", Subtitle: "Beginner to squad level", Position: 3},
}
