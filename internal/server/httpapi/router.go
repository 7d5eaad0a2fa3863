package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/ymiyake/enquete/internal/logging"
	"github.com/ymiyake/enquete/internal/server/accounts"
	"github.com/ymiyake/enquete/internal/server/metrics"
	"github.com/ymiyake/enquete/internal/server/store"
)

// accountOp is either Manager.SignIn or Manager.SignUp.
type accountOp func(ctx context.Context, email, password string) (*accounts.Account, error)

// Server wires the emulator's handlers to their dependencies.
type Server struct {
	store    store.Store
	accounts *accounts.Manager

	secretKey []byte
	tokenTTL  time.Duration

	log     logging.Logger
	metrics *metrics.Metrics
	limiter *clientLimiter
}

// Options configures a Server.
type Options struct {
	SecretKey []byte
	TokenTTL  time.Duration

	// RateLimit / RateBurst bound each client's request rate. A zero
	// RateLimit disables limiting.
	RateLimit rate.Limit
	RateBurst int
}

func NewServer(st store.Store, acc *accounts.Manager, opts Options, log logging.Logger, m *metrics.Metrics) *Server {
	var limiter *clientLimiter
	if opts.RateLimit > 0 {
		limiter = newClientLimiter(opts.RateLimit, opts.RateBurst)
	}
	return &Server{
		store:     st,
		accounts:  acc,
		secretKey: opts.SecretKey,
		tokenTTL:  opts.TokenTTL,
		log:       log,
		metrics:   m,
		limiter:   limiter,
	}
}

// Routes builds the emulator's router: the two identity endpoints, the
// metrics endpoint, and a catch-all for the data tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.countRequests)
	r.Use(s.rateLimit)

	r.Post("/v1/accounts:signInWithPassword", s.handleSignIn)
	r.Post("/v1/accounts:signUp", s.handleSignUp)

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Everything else addresses the JSON tree.
	r.HandleFunc("/*", s.handleData)

	return r
}
