package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/crawld"
)

// Compile-time interface verification.
var _ crawld.FrontierStore = (*FrontierService)(nil)

// FrontierService implements crawld.FrontierStore using SQLite.
type FrontierService struct {
	db *DB
}

// NewFrontierService creates a new FrontierService.
func NewFrontierService(db *DB) *FrontierService {
	return &FrontierService{db: db}
}

// InsertIfAbsent atomically inserts a new record if the URL is unknown.
// Exactly one concurrent caller for the same URL observes true; the
// UNIQUE constraint on url arbitrates.
func (s *FrontierService) InsertIfAbsent(ctx context.Context, url string, status crawld.Status, isSitemap bool) (bool, error) {
	if !status.Valid() {
		return false, crawld.Errorf(crawld.EINVALID, "invalid status %q", status)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO urls (url, status, last_status_change, retry_count, is_sitemap)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(url) DO NOTHING
	`, url, string(status), now(), boolToInt(isSitemap))
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the record for a URL, or ENOTFOUND if it is unknown.
func (s *FrontierService) Get(ctx context.Context, url string) (*crawld.Record, error) {
	var rec crawld.Record
	var changed string
	var lastError, pauseReason sql.NullString
	var isSitemap int

	err := s.db.QueryRowContext(ctx, `
		SELECT url, status, last_status_change, last_error, retry_count, is_sitemap, pause_reason
		FROM urls
		WHERE url = ?
	`, url).Scan(&rec.URL, &rec.Status, &changed, &lastError, &rec.RetryCount, &isSitemap, &pauseReason)

	if err == sql.ErrNoRows {
		return nil, crawld.Errorf(crawld.ENOTFOUND, "URL not found: %s", url)
	}
	if err != nil {
		return nil, err
	}

	rec.LastStatusChange, err = time.Parse(time.RFC3339, changed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_status_change: %w", err)
	}
	rec.LastError = lastError.String
	rec.PauseReason = pauseReason.String
	rec.IsSitemap = isSitemap != 0

	return &rec, nil
}

// UpdateStatus transitions a record to status, applying the partial update.
// Only supplied fields change. An unknown URL is a silent no-op.
func (s *FrontierService) UpdateStatus(ctx context.Context, url string, status crawld.Status, upd crawld.StatusUpdate) error {
	if !status.Valid() {
		return crawld.Errorf(crawld.EINVALID, "invalid status %q", status)
	}

	fields := []string{"status = ?", "last_status_change = ?"}
	args := []any{string(status), now()}

	if upd.LastError != nil {
		fields = append(fields, "last_error = ?")
		args = append(args, *upd.LastError)
	} else if upd.ClearLastError {
		fields = append(fields, "last_error = NULL")
	}

	if upd.IncrementRetry {
		fields = append(fields, "retry_count = retry_count + 1")
	}

	if upd.IsSitemap != nil {
		fields = append(fields, "is_sitemap = ?")
		args = append(args, boolToInt(*upd.IsSitemap))
	}

	if upd.PauseReason != nil {
		fields = append(fields, "pause_reason = ?")
		args = append(args, *upd.PauseReason)
	} else if upd.ClearPauseReason {
		fields = append(fields, "pause_reason = NULL")
	}

	args = append(args, url)
	query := fmt.Sprintf("UPDATE urls SET %s WHERE url = ?", strings.Join(fields, ", "))

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// ListByStatus returns the URLs currently in status, in insertion order.
func (s *FrontierService) ListByStatus(ctx context.Context, status crawld.Status) ([]string, error) {
	return s.listURLs(ctx, `SELECT url FROM urls WHERE status = ? ORDER BY id ASC`, string(status))
}

// AllURLs returns every known URL in insertion order.
func (s *FrontierService) AllURLs(ctx context.Context) ([]string, error) {
	return s.listURLs(ctx, `SELECT url FROM urls ORDER BY id ASC`)
}

func (s *FrontierService) listURLs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// PausePrefix transitions every pending record whose URL starts with prefix
// to paused. A single UPDATE on the store's one writer connection makes the
// transition atomic against concurrent single-row updates.
func (s *FrontierService) PausePrefix(ctx context.Context, prefix, reason string) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE urls
		SET status = ?, last_status_change = ?, pause_reason = ?
		WHERE status = ? AND url LIKE ? ESCAPE '\'
	`, string(crawld.StatusPaused), now(), reason, string(crawld.StatusPending), likePrefix(prefix))
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ResumePrefix transitions every paused record whose URL starts with prefix
// back to pending and returns the affected URLs. SELECT and UPDATE run in
// one transaction so the returned set is exactly the set transitioned.
func (s *FrontierService) ResumePrefix(ctx context.Context, prefix string) ([]string, int, error) {
	urls, err := s.resume(ctx, `url LIKE ? ESCAPE '\'`, likePrefix(prefix))
	if err != nil {
		return nil, 0, err
	}
	return urls, len(urls), nil
}

// ResumeAll transitions every paused record back to pending and returns the
// affected URLs.
func (s *FrontierService) ResumeAll(ctx context.Context) ([]string, error) {
	return s.resume(ctx, "1=1")
}

func (s *FrontierService) resume(ctx context.Context, cond string, args ...any) ([]string, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`SELECT url FROM urls WHERE status = ? AND %s ORDER BY id ASC`, cond)
	rows, err := tx.QueryContext(ctx, query, append([]any{string(crawld.StatusPaused)}, args...)...)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			rows.Close()
			return nil, err
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	update := fmt.Sprintf(`
		UPDATE urls
		SET status = ?, last_status_change = ?, pause_reason = NULL
		WHERE status = ? AND %s
	`, cond)
	updateArgs := append([]any{string(crawld.StatusPending), now(), string(crawld.StatusPaused)}, args...)
	if _, err := tx.ExecContext(ctx, update, updateArgs...); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return urls, nil
}

// EarliestURL returns the first-ever inserted URL, or ENOTFOUND when the
// store is empty.
func (s *FrontierService) EarliestURL(ctx context.Context) (string, error) {
	var url string
	err := s.db.QueryRowContext(ctx, `SELECT url FROM urls ORDER BY id ASC LIMIT 1`).Scan(&url)
	if err == sql.ErrNoRows {
		return "", crawld.Errorf(crawld.ENOTFOUND, "frontier is empty")
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// StatusCounts returns per-status counts from a single aggregate query,
// which yields a consistent snapshot rather than four racing reads.
func (s *FrontierService) StatusCounts(ctx context.Context) (crawld.StatusCounts, error) {
	var c crawld.StatusCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'visited' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'paused' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0)
		FROM urls
	`).Scan(&c.Pending, &c.Visited, &c.Paused, &c.Error)
	if err != nil {
		return crawld.StatusCounts{}, err
	}
	return c, nil
}

// Close closes the underlying database.
func (s *FrontierService) Close() error {
	return s.db.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// likePrefix turns a literal prefix into a LIKE pattern, escaping LIKE
// metacharacters so matching stays a plain string-prefix test.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
