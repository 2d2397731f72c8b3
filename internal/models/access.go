package models

import (
	"strings"
)

// ISOMillis is the timestamp layout used in persisted records, millisecond
// precision with a trailing zone designator.
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// Action tags a log record with how its request was handled.
type Action string

const (
	// ActionRedirect marks a record in the redirect namespace for a
	// request that was sent to the affiliate destination.
	ActionRedirect Action = "REDIRECT_TO_FIVERR"
	// ActionRedirectAccess is the all-access copy of the same event.
	ActionRedirectAccess Action = "REDIRECT_ACCESS"
	// ActionNormalAccess marks an ordinary logged visit.
	ActionNormalAccess Action = "NORMAL_ACCESS"
)

// IsRedirect reports whether the action came from the redirect path.
func (a Action) IsRedirect() bool {
	return strings.Contains(string(a), "REDIRECT")
}

// AccessEvent captures one inbound request. It is built per request and
// discarded once the records derived from it are written.
type AccessEvent struct {
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Referer   string `json:"referer"`
	UserAgent string `json:"userAgent"`
	IP        string `json:"ip"`
	Country   string `json:"country"`
	RefParam  string `json:"refParam"`
}

// LogRecord is the persisted form of an AccessEvent. Records are immutable
// once written; the store only supports put and expiry.
type LogRecord struct {
	Action      Action `json:"action"`
	SortTime    int64  `json:"sortTime"`
	DisplayTime string `json:"displayTime"`
	AccessEvent
}

// LatestIndexEntry is a lightweight pointer to one recent LogRecord. A
// namespace's latest index holds these newest-first, capped at a fixed
// length.
type LatestIndexEntry struct {
	Key         string `json:"key"`
	Timestamp   int64  `json:"timestamp"`
	DisplayTime string `json:"displayTime"`
	Action      Action `json:"action"`
}
