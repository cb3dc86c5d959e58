package portfolio

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	fnOnce sync.Once
	fnSite *Site
	fnErr  error
)

// Handle is the entry point when the site runs as a cloud function. The site
// is built from the environment on the first request and reused afterwards.
func Handle(w http.ResponseWriter, r *http.Request) {
	fnOnce.Do(func() {
		_ = godotenv.Load()
		cfg, err := ConfigFromEnv()
		if err != nil {
			fnErr = err
			return
		}
		logger := NewLogger(os.Stderr, cfg.LogLevel)
		fnSite, fnErr = NewFromConfig(cfg, logger)
	})
	if fnErr != nil {
		slog.Error("portfolio: startup failed", "err", fnErr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	fnSite.ServeHTTP(w, r)
}
