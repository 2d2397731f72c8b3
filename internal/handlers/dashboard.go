package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/models"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/repository"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
)

const defaultLogLimit = 20

// logRow is one rendered dashboard entry.
type logRow struct {
	models.LogRecord
	Redirect bool
	Device   string
	ShortUA  string
}

// ShowLatestLogs reports the most recent records for one namespace. The
// endpoint is diagnostic: callers are operators and partial results are
// acceptable.
func (h *Handler) ShowLatestLogs(c *gin.Context) {
	kvType := c.DefaultQuery("kv", "redirect")
	limit := parsePositiveInt(c.Query("limit"), defaultLogLimit)

	store := h.redirectLogs
	if kvType == "all" {
		store = h.allAccess
	}

	raw, err := store.Get(c.Request.Context(), services.IndexKey(store.Name()))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "No logs found",
			"logs":    []models.LogRecord{},
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to read latest index", "namespace", store.Name(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	var index []models.LatestIndexEntry
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		h.logger.Error("Unparsable latest index", "namespace", store.Name(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if limit < len(index) {
		index = index[:limit]
	}

	logs := h.fetchRecords(c.Request.Context(), store, index)

	redirects, normal := 0, 0
	devices := map[string]int{}
	rows := make([]logRow, 0, len(logs))
	for _, rec := range logs {
		row := logRow{
			LogRecord: rec,
			Redirect:  rec.Action.IsRedirect(),
			Device:    deviceType(rec.UserAgent),
			ShortUA:   truncate(rec.UserAgent, 100),
		}
		if row.Redirect {
			redirects++
		} else {
			normal++
		}
		devices[row.Device]++
		rows = append(rows, row)
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"total":     len(logs),
			"redirects": redirects,
			"normal":    normal,
			"logs":      logs,
		})
		return
	}

	c.HTML(http.StatusOK, "logs.html", gin.H{
		"KvType":    kvType,
		"Rows":      rows,
		"Total":     len(logs),
		"Redirects": redirects,
		"Normal":    normal,
		"Devices":   devices,
	})
}

// fetchRecords resolves index entries to records in parallel. A fetch or
// parse failure drops that entry rather than failing the report.
func (h *Handler) fetchRecords(ctx context.Context, store repository.Store, index []models.LatestIndexEntry) []models.LogRecord {
	results := make([]*models.LogRecord, len(index))

	var wg sync.WaitGroup
	for i, entry := range index {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()

			raw, err := store.Get(ctx, key)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					h.logger.Warn("Failed to fetch log record", "key", key, "error", err)
				}
				return
			}

			var rec models.LogRecord
			if err := json.Unmarshal([]byte(raw), &rec); err != nil {
				h.logger.Warn("Discarding unparsable log record", "key", key, "error", err)
				return
			}
			results[i] = &rec
		}(i, entry.Key)
	}
	wg.Wait()

	logs := make([]models.LogRecord, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			logs = append(logs, *rec)
		}
	}
	return logs
}

func deviceType(rawUA string) string {
	ua := user_agent.New(rawUA)
	switch {
	case ua.Bot():
		return "Bot"
	case ua.Mobile():
		return "Mobile"
	default:
		return "Desktop"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
