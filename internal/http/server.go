// Package http exposes the ledger over a JSON API. Authentication happens
// upstream; handlers trust the X-User-ID header set by the gateway.
package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"finledger/internal/cache"
	"finledger/internal/core"
	"finledger/internal/services"
)

const overviewCacheTTL = time.Minute

type Server struct {
	http.Server

	users        *services.UserService
	wallets      *services.WalletService
	categories   *services.CategoryService
	transactions *services.TransactionService
	transfers    *services.TransferService
	ledger       *services.AggregationService

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Per-user dashboard payloads, invalidated on every write.
	overviewCache *cache.LRU[core.Overview]

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(
	addr string,
	users *services.UserService,
	wallets *services.WalletService,
	categories *services.CategoryService,
	transactions *services.TransactionService,
	transfers *services.TransferService,
	ledger *services.AggregationService,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		users:         users,
		wallets:       wallets,
		categories:    categories,
		transactions:  transactions,
		transfers:     transfers,
		ledger:        ledger,
		rateLimiter:   newRateLimiter(),
		metrics:       &securityMetrics{},
		overviewCache: cache.NewLRU[core.Overview](500, overviewCacheTTL),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("POST /api/users", s.withMiddleware(s.handleCreateUser))
	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))

	mux.HandleFunc("GET /api/wallets", s.withMiddleware(s.handleListWallets))
	mux.HandleFunc("POST /api/wallets", s.withMiddleware(s.handleCreateWallet))
	mux.HandleFunc("PUT /api/wallets/{id}", s.withMiddleware(s.handleUpdateWallet))
	mux.HandleFunc("DELETE /api/wallets/{id}", s.withMiddleware(s.handleDeleteWallet))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withMiddleware(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.withMiddleware(s.handleRenameCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withMiddleware(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withMiddleware(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("POST /api/transfers", s.withMiddleware(s.handleCreateTransfer))

	return s
}

// Shutdown stops the rate limiter cleanup goroutine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) overviewCacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (s *Server) invalidateOverview(userID int64) {
	s.overviewCache.Delete(s.overviewCacheKey(userID))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
