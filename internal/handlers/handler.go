package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/config"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/repository"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/services"
)

type Handler struct {
	cfg          config.Config
	logger       *slog.Logger
	redirectLogs repository.Store
	allAccess    repository.Store
	logWriter    *services.LogWriter
	geoIP        *services.GeoIPService
	metrics      *services.AccessMetrics
	origin       *httputil.ReverseProxy
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	redirectLogs repository.Store,
	allAccess repository.Store,
	logWriter *services.LogWriter,
	geoIP *services.GeoIPService,
	metrics *services.AccessMetrics,
) (*Handler, error) {
	originURL, err := url.Parse(cfg.OriginURL)
	if err != nil {
		return nil, fmt.Errorf("invalid origin URL %q: %w", cfg.OriginURL, err)
	}

	origin := httputil.NewSingleHostReverseProxy(originURL)
	origin.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("Origin fetch failed", "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusBadGateway)
	}

	return &Handler{
		cfg:          cfg,
		logger:       logger,
		redirectLogs: redirectLogs,
		allAccess:    allAccess,
		logWriter:    logWriter,
		geoIP:        geoIP,
		metrics:      metrics,
		origin:       origin,
	}, nil
}
