package member

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const memberSelect = `
	SELECT u.id, COALESCE(u.full_name, '') AS full_name, u.email, gu.role, gu.created_at,
		m.plan_name AS membership_plan, m.status AS membership_status
	FROM gym_users gu
	JOIN user_profiles u ON u.id = gu.user_id
	LEFT JOIN LATERAL (
		SELECT mp.name AS plan_name, ms.status
		FROM memberships ms
		JOIN membership_plans mp ON mp.id = ms.membership_plan_id
		WHERE ms.gym_id = gu.gym_id
		  AND ms.user_id = gu.user_id
		  AND ms.status <> 'cancelled'
		ORDER BY ms.start_date DESC, ms.created_at DESC
		LIMIT 1
	) m ON TRUE
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListMembers(ctx context.Context, gymID string) ([]Member, error) {
	query := memberSelect + `
		WHERE gu.gym_id = $1 AND gu.role = 'member'
		ORDER BY lower(COALESCE(u.full_name, '')) ASC, u.id ASC
	`

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, gymID); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) GetMember(ctx context.Context, gymID, userID string) (*Member, error) {
	query := memberSelect + `
		WHERE gu.gym_id = $1 AND gu.user_id = $2
	`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, gymID, userID); err != nil {
		return nil, err
	}
	return &m, nil
}
