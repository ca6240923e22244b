package sqlite

import (
	"context"
	"time"
)

type rateLimitsRepo struct {
	q dbtx
}

// Increment relies on the sqlite upsert so the read-modify-write is a single
// statement. RETURNING hands back the post-increment count, which is what the
// limiter compares against its policy.
func (r *rateLimitsRepo) Increment(
	ctx context.Context,
	key string,
	windowStart time.Time,
) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO rate_limit_counters (key, window_start, count)
		VALUES (?, ?, 1)
		ON CONFLICT (key, window_start) DO UPDATE SET count = count + 1
		RETURNING count`,
		key, toMillis(windowStart)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *rateLimitsRepo) DeleteWindowsBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM rate_limit_counters
		WHERE window_start < ?`,
		toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
