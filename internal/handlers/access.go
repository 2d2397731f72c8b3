package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/models"

	"github.com/gin-gonic/gin"
)

// HandleAccess classifies every request outside the operator routes.
// Referral traffic (ref matches the sentinel, live Referer) gets a 302 to
// the affiliate URL; everything else is proxied to the static origin.
// Root-path and query-carrying requests are logged either way.
func (h *Handler) HandleAccess(c *gin.Context) {
	referer := c.GetHeader("Referer")
	refParam := c.Query("ref")

	shouldLog := c.Request.URL.Path == "/" || c.Request.URL.RawQuery != ""

	if refParam == h.cfg.RefSentinel && strings.TrimSpace(referer) != "" {
		if shouldLog {
			event := h.buildEvent(c)

			// Both namespaces get a copy. The writes run concurrently
			// and fail independently; Write swallows its own errors.
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				h.logWriter.Write(c.Request.Context(), h.redirectLogs, event, models.ActionRedirect)
			}()
			go func() {
				defer wg.Done()
				h.logWriter.Write(c.Request.Context(), h.allAccess, event, models.ActionRedirectAccess)
			}()
			wg.Wait()
		}

		h.metrics.RedirectsTotal.Inc()
		// bare 302 with an empty body, not http.Redirect's HTML snippet
		c.Header("Location", h.cfg.RedirectURL)
		c.Header("Cache-Control", "no-cache")
		c.Status(http.StatusFound)
		return
	}

	if shouldLog {
		h.logWriter.Write(c.Request.Context(), h.allAccess, h.buildEvent(c), models.ActionNormalAccess)
	}

	h.metrics.PassthroughsTotal.Inc()
	h.origin.ServeHTTP(c.Writer, c.Request)
}

func (h *Handler) buildEvent(c *gin.Context) models.AccessEvent {
	ip := c.GetHeader("CF-Connecting-IP")
	if ip == "" {
		ip = c.ClientIP()
	}

	country := c.GetHeader("CF-IPCountry")
	if country == "" && h.geoIP != nil {
		country = h.geoIP.Country(ip)
	}

	return models.AccessEvent{
		Timestamp: time.Now().UTC().Format(models.ISOMillis),
		URL:       requestURL(c.Request),
		Referer:   c.GetHeader("Referer"),
		UserAgent: c.GetHeader("User-Agent"),
		IP:        ip,
		Country:   country,
		RefParam:  c.Query("ref"),
	}
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
