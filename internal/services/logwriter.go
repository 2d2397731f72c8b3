package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/models"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/repository"
	"github.com/PetalsOnaWet/fiverr-pro-landing/pkg/utils"
)

const (
	// timestampCeiling exceeds any epoch-millis value within the service's
	// operating horizon. Subtracting from it makes ascending key order
	// equal descending time order.
	timestampCeiling = int64(9999999999999)

	keySuffixLength = 6

	// RetentionTTL bounds the lifetime of every record and index. An
	// active namespace refreshes its index TTL on each write; an idle one
	// eventually expires.
	RetentionTTL = 30 * 24 * time.Hour

	// IndexCap bounds the latest-record index. Older entries fall off and
	// become unreachable through the dashboard, although the records
	// themselves live out their TTL.
	IndexCap = 50
)

// LogKey builds "{13-digit reverse timestamp}_{random suffix}" for the
// given instant. Later instants produce lexicographically smaller keys.
func LogKey(t time.Time) string {
	return fmt.Sprintf("%013d_%s", timestampCeiling-t.UnixMilli(), utils.KeySuffix(keySuffixLength))
}

// IndexKey returns the well-known key of a namespace's latest-record index.
func IndexKey(namespace string) string {
	return namespace + "_LATEST_INDEX"
}

// LogWriter appends access records to KV namespaces and maintains each
// namespace's bounded latest-record index.
type LogWriter struct {
	logger  *slog.Logger
	metrics *AccessMetrics
}

func NewLogWriter(logger *slog.Logger, metrics *AccessMetrics) *LogWriter {
	return &LogWriter{
		logger:  logger,
		metrics: metrics,
	}
}

// Write persists one record and refreshes the namespace's index. Failures
// are logged and swallowed: a lost log entry must never affect the
// caller's response.
func (s *LogWriter) Write(ctx context.Context, store repository.Store, event models.AccessEvent, action models.Action) {
	now := time.Now()
	record := models.LogRecord{
		Action:      action,
		SortTime:    now.UnixMilli(),
		DisplayTime: now.UTC().Format(models.ISOMillis),
		AccessEvent: event,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("Failed to serialize log record", "action", action, "error", err)
		s.metrics.LogWritesTotal.WithLabelValues(store.Name(), "error").Inc()
		return
	}

	key := LogKey(now)
	if err := store.Put(ctx, key, string(payload), RetentionTTL); err != nil {
		s.logger.Error("Failed to write log record", "namespace", store.Name(), "key", key, "error", err)
		s.metrics.LogWritesTotal.WithLabelValues(store.Name(), "error").Inc()
		return
	}

	s.updateIndex(ctx, store, key, record)
	s.metrics.LogWritesTotal.WithLabelValues(store.Name(), "ok").Inc()
}

func (s *LogWriter) updateIndex(ctx context.Context, store repository.Store, key string, record models.LogRecord) {
	indexKey := IndexKey(store.Name())

	var index []models.LatestIndexEntry
	raw, err := store.Get(ctx, indexKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// first write to this namespace
	case err != nil:
		s.logger.Warn("Failed to read latest index, starting fresh", "namespace", store.Name(), "error", err)
	default:
		if uerr := json.Unmarshal([]byte(raw), &index); uerr != nil {
			s.logger.Warn("Discarding unparsable latest index", "namespace", store.Name(), "error", uerr)
			index = nil
		}
	}

	index = append([]models.LatestIndexEntry{{
		Key:         key,
		Timestamp:   record.SortTime,
		DisplayTime: record.DisplayTime,
		Action:      record.Action,
	}}, index...)
	if len(index) > IndexCap {
		index = index[:IndexCap]
	}

	payload, err := json.Marshal(index)
	if err != nil {
		s.logger.Error("Failed to serialize latest index", "namespace", store.Name(), "error", err)
		return
	}

	// Concurrent writers race on this read-modify-write. The store has no
	// transactions; a lost index entry only costs dashboard visibility,
	// the record itself is already stored. Accepted trade-off.
	if err := store.Put(ctx, indexKey, string(payload), RetentionTTL); err != nil {
		s.logger.Error("Failed to update latest index", "namespace", store.Name(), "error", err)
	}
}
