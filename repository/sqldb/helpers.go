package sqldb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/fastygo/taskdesk/domain"
)

// isUniqueViolation recognises UNIQUE constraint failures from either backend.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}

// dateColumn scans a DATE column. SQLite hands back either the stored text or a
// parsed time depending on the declared type; Postgres always returns a time.
type dateColumn struct {
	Time  time.Time
	Valid bool
}

func (d *dateColumn) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time, d.Valid = v, true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("unsupported deadline value %T", src)
	}
}

func (d *dateColumn) parse(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		d.Time, d.Valid = time.Time{}, false
		return nil
	}
	for _, layout := range []string{domain.DateLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			d.Time, d.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("unparseable deadline %q", value)
}

// dateArg keeps deadlines as YYYY-MM-DD text so lexicographic and
// chronological order agree.
func dateArg(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(domain.DateLayout)
}
