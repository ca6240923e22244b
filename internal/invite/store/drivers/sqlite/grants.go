package sqlite

import (
	"context"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
)

type grantsRepo struct {
	q dbtx
}

func (r *grantsRepo) CreateGrant(ctx context.Context, g domain.AccessGrant) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO access_grants (id, grantee_id, resource_id, token_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		g.ID,
		g.GranteeID,
		g.ResourceID,
		g.TokenID,
		toMillis(g.CreatedAt),
	)
	return mapConflict(err)
}

func (r *grantsRepo) GetGrant(
	ctx context.Context,
	granteeID, resourceID string,
) (domain.AccessGrant, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, grantee_id, resource_id, token_id, created_at
		FROM access_grants
		WHERE grantee_id = ? AND resource_id = ?`,
		granteeID, resourceID)

	var (
		g         domain.AccessGrant
		createdAt int64
	)
	if err := row.Scan(&g.ID, &g.GranteeID, &g.ResourceID, &g.TokenID, &createdAt); err != nil {
		return domain.AccessGrant{}, mapNotFound(err)
	}
	g.CreatedAt = fromMillis(createdAt)

	return g, nil
}
