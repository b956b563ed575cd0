package crawld

import (
	"context"
	"time"
)

// Status is the crawl state of a URL record. A record holds exactly one
// status at a time and changes it only through FrontierStore transitions.
type Status string

// Valid statuses.
const (
	StatusPending Status = "pending" // discovered, not yet fetched, eligible for dispatch
	StatusVisited Status = "visited" // fetched successfully
	StatusPaused  Status = "paused"  // withheld from dispatch by an operator
	StatusError   Status = "error"   // failed MaxRetries times; terminal
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVisited, StatusPaused, StatusError:
		return true
	}
	return false
}

// MaxRetries is the number of failed fetch attempts after which a URL
// becomes a terminal error and never automatically re-enters the crawl.
const MaxRetries = 3

// Record is the durable crawl state of a single URL. Records are created
// on first discovery (seed or extracted link) and never deleted; the
// frontier is an append/update-only log of crawl history.
type Record struct {
	URL              string    `json:"url"`
	Status           Status    `json:"status"`
	LastStatusChange time.Time `json:"lastStatusChange"`
	LastError        string    `json:"lastError,omitempty"`
	RetryCount       int       `json:"retryCount"`
	IsSitemap        bool      `json:"isSitemap"`
	PauseReason      string    `json:"pauseReason,omitempty"` // set iff Status == StatusPaused
}

// StatusUpdate describes the optional fields of a status transition.
// Only supplied fields change; the zero value transitions status alone.
type StatusUpdate struct {
	LastError        *string // error description to record
	ClearLastError   bool    // clear the recorded error (successful visit)
	IsSitemap        *bool   // classification observed at fetch time
	PauseReason      *string // present on transitions into StatusPaused
	ClearPauseReason bool    // clear on transitions out of StatusPaused
	IncrementRetry   bool    // add 1 to the retry count
}

// StatusCounts is a consistent snapshot of record counts per status.
type StatusCounts struct {
	Pending int `json:"pending"`
	Visited int `json:"visited"`
	Paused  int `json:"paused"`
	Error   int `json:"error"`
}

// Total returns the number of known URLs.
func (c StatusCounts) Total() int {
	return c.Pending + c.Visited + c.Paused + c.Error
}

// FrontierStore is the durable, concurrency-safe table of URL records and
// the single source of truth for crawl state across restarts. All mutation
// goes through the operations below; multi-row operations execute as a
// single atomic unit against concurrent single-row updates from workers.
type FrontierStore interface {
	// InsertIfAbsent atomically inserts a new record in the given status if
	// the URL is unknown. Returns whether insertion occurred; under
	// concurrent calls for the same URL exactly one caller observes true.
	InsertIfAbsent(ctx context.Context, url string, status Status, isSitemap bool) (bool, error)

	// Get returns the record for a URL.
	// Returns ENOTFOUND if the URL is unknown.
	Get(ctx context.Context, url string) (*Record, error)

	// UpdateStatus atomically transitions a record to status, applying the
	// supplied partial update. An unknown URL is a silent no-op: the URL may
	// have lost relevance between dispatch and completion.
	UpdateStatus(ctx context.Context, url string, status Status, upd StatusUpdate) error

	// ListByStatus returns the URLs currently in status, in insertion order.
	ListByStatus(ctx context.Context, status Status) ([]string, error)

	// AllURLs returns every known URL in insertion order.
	AllURLs(ctx context.Context) ([]string, error)

	// PausePrefix transitions every pending record whose URL starts with
	// prefix to paused with the given reason and returns the count affected.
	// Records outside pending are untouched. Matching is a plain
	// string-prefix test with no host or path boundary awareness, so
	// "https://a.com" also matches "https://a.com.evil.org".
	PausePrefix(ctx context.Context, prefix, reason string) (int, error)

	// ResumePrefix transitions every paused record whose URL starts with
	// prefix back to pending, clearing the pause reason. It returns the
	// affected URLs so the caller can re-enqueue them, and the count.
	ResumePrefix(ctx context.Context, prefix string) ([]string, int, error)

	// ResumeAll is ResumePrefix with no prefix filter.
	ResumeAll(ctx context.Context) ([]string, error)

	// EarliestURL returns the first-ever inserted URL, used to infer the
	// crawl's primary domain. Returns ENOTFOUND if the store is empty.
	EarliestURL(ctx context.Context) (string, error)

	// StatusCounts returns a consistent snapshot of per-status counts.
	StatusCounts(ctx context.Context) (StatusCounts, error)

	// Close flushes and closes the store.
	Close() error
}
