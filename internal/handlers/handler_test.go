package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/config"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/repository"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type testEnv struct {
	handler      *Handler
	redirectLogs *repository.Namespace
	allAccess    *repository.Namespace
	mr           *miniredis.Miniredis
	origin       *httptest.Server
}

func setupTestHandler(t *testing.T) *testEnv {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	origin := httptest.NewServer(originStub())
	t.Cleanup(origin.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		OriginURL:   origin.URL,
		RedirectURL: "https://go.fiverr.com/visit/?bta=1144956&brand=fp",
		RefSentinel: "ppp",
	}

	metrics := services.NewAccessMetrics()
	redirectLogs := repository.NewNamespace(rdb, repository.NamespaceRedirect)
	allAccess := repository.NewNamespace(rdb, repository.NamespaceAllAccess)
	logWriter := services.NewLogWriter(logger, metrics)
	geoIP := services.NewGeoIPService(cfg, logger)

	h, err := NewHandler(cfg, logger, redirectLogs, allAccess, logWriter, geoIP, metrics)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testEnv{
		handler:      h,
		redirectLogs: redirectLogs,
		allAccess:    allAccess,
		mr:           mr,
		origin:       origin,
	}
}

func setupTestRouter(h *Handler) http.Handler {
	gin.SetMode(gin.TestMode)
	engine := h.SetupRouter(nil, "../../web/templates/*.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// httptest requests carry context.Background, whose nil Done channel
		// makes ReverseProxy fall back to CloseNotifier, which the recorder
		// does not implement; a real server always supplies a cancellable
		// context, so emulate that here.
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		engine.ServeHTTP(w, r.WithContext(ctx))
	})
}
