package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
	"github.com/aussiebroadwan/housekey/internal/invite/store"
)

type tokensRepo struct {
	q dbtx
}

// rowScanner lets scanToken work for both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const tokenColumns = `id, resource_id, resource_name, token_hash, token_salt, max_uses, use_count,
	intended_identity, issued_by, created_at, updated_at, expires_at, revoked_at`

func scanToken(row rowScanner) (domain.InviteToken, error) {
	var (
		t                domain.InviteToken
		createdAt        int64
		updatedAt        int64
		expiresAt        int64
		intendedIdentity sql.NullString
		revokedAt        sql.NullInt64
	)

	err := row.Scan(
		&t.ID,
		&t.ResourceID,
		&t.ResourceName,
		&t.TokenHash,
		&t.TokenSalt,
		&t.MaxUses,
		&t.UseCount,
		&intendedIdentity,
		&t.IssuedBy,
		&createdAt,
		&updatedAt,
		&expiresAt,
		&revokedAt,
	)
	if err != nil {
		return domain.InviteToken{}, err
	}

	if intendedIdentity.Valid {
		t.IntendedIdentity = intendedIdentity.String
	}
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	t.ExpiresAt = fromMillis(expiresAt)
	t.RevokedAt = millisPtr(revokedAt)

	return t, nil
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.InviteToken) error {
	var intended sql.NullString
	if t.IntendedIdentity != "" {
		intended = sql.NullString{String: t.IntendedIdentity, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invite_tokens (`+tokenColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.ResourceID,
		t.ResourceName,
		t.TokenHash,
		t.TokenSalt,
		t.MaxUses,
		t.UseCount,
		intended,
		t.IssuedBy,
		toMillis(t.CreatedAt),
		toMillis(t.UpdatedAt),
		toMillis(t.ExpiresAt),
		optionalMillis(t.RevokedAt),
	)
	return mapConflict(err)
}

func (r *tokensRepo) GetTokenByID(ctx context.Context, id string) (domain.InviteToken, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+tokenColumns+`
		FROM invite_tokens
		WHERE id = ?`, id)

	t, err := scanToken(row)
	if err != nil {
		return domain.InviteToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) ListTokensByResource(
	ctx context.Context,
	resourceID string,
) ([]domain.InviteToken, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+tokenColumns+`
		FROM invite_tokens
		WHERE resource_id = ?
		ORDER BY id DESC`, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.InviteToken
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// ConsumeUse performs the conditional increment that guards redemption. All
// redeemability checks live in the WHERE clause so concurrent redeemers can
// never push use_count past max_uses.
func (r *tokensRepo) ConsumeUse(ctx context.Context, id string, now time.Time) (bool, error) {
	nowMs := toMillis(now)
	graceMs := domain.ExpiryGrace.Milliseconds()

	res, err := r.q.ExecContext(ctx, `
		UPDATE invite_tokens
		SET use_count = use_count + 1, updated_at = ?
		WHERE id = ?
		  AND revoked_at IS NULL
		  AND use_count < max_uses
		  AND expires_at + ? >= ?`,
		nowMs, id, graceMs, nowMs)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *tokensRepo) RevokeToken(ctx context.Context, id string, now time.Time) error {
	nowMs := toMillis(now)

	res, err := r.q.ExecContext(ctx, `
		UPDATE invite_tokens
		SET revoked_at = ?, updated_at = ?
		WHERE id = ? AND revoked_at IS NULL`,
		nowMs, nowMs, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	// Nothing updated: either the token doesn't exist or it was already
	// revoked. The latter is an idempotent success.
	var one int
	err = r.q.QueryRowContext(ctx, `SELECT 1 FROM invite_tokens WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func (r *tokensRepo) DeleteTerminalTokensBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	cutoffMs := toMillis(cutoff)
	graceMs := domain.ExpiryGrace.Milliseconds()

	res, err := r.q.ExecContext(ctx, `
		DELETE FROM invite_tokens
		WHERE (revoked_at IS NOT NULL AND revoked_at < ?)
		   OR (expires_at + ? < ?)
		   OR (use_count >= max_uses AND updated_at < ?)`,
		cutoffMs, graceMs, cutoffMs, cutoffMs)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
