package registration

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rocketfist/internal/db"
	"rocketfist/internal/email"

	"github.com/jmoiron/sqlx"
)

const instanceColumns = `ci.id, ci.gym_id, ci.class_id, c.name AS class_name,
		ci.start_time, ci.end_time, ci.max_capacity, ci.status`

const registrationColumns = `r.id, r.class_instance_id, r.user_id, r.status, r.checked_in_at, r.created_at, r.updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetInstance(ctx context.Context, gymID, instanceID string) (*InstanceInfo, error) {
	query := `
		SELECT ` + instanceColumns + `
		FROM class_instances ci
		JOIN classes c ON c.id = ci.class_id
		WHERE ci.id = $1 AND ci.gym_id = $2
	`

	var info InstanceInfo
	if err := r.db.GetContext(ctx, &info, query, instanceID, gymID); err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *repository) ListForRoster(ctx context.Context, instanceID string) ([]RosterEntry, error) {
	query := `
		SELECT r.id, r.user_id, COALESCE(u.full_name, '') AS full_name, u.email,
			r.status, r.checked_in_at, r.created_at
		FROM class_registrations r
		JOIN user_profiles u ON u.id = r.user_id
		WHERE r.class_instance_id = $1
		  AND r.status <> 'cancelled'
		ORDER BY lower(COALESCE(u.full_name, '')) ASC, r.created_at ASC, r.id ASC
	`

	entries := []RosterEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, instanceID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Register(ctx context.Context, gymID, instanceID, userID string) (*Registration, *InstanceInfo, error) {
	lockQuery := `
		SELECT ` + instanceColumns + `
		FROM class_instances ci
		JOIN classes c ON c.id = ci.class_id
		WHERE ci.id = $1 AND ci.gym_id = $2
		FOR UPDATE OF ci
	`
	memberQuery := `
		SELECT EXISTS(SELECT 1 FROM gym_users WHERE gym_id = $1 AND user_id = $2)
	`
	countQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('reserved', 'checked_in')) AS holding,
			COUNT(*) FILTER (WHERE user_id = $2 AND status <> 'cancelled') AS mine
		FROM class_registrations
		WHERE class_instance_id = $1
	`
	insertQuery := `
		INSERT INTO class_registrations (class_instance_id, user_id, status)
		VALUES ($1, $2, 'reserved')
		RETURNING id, class_instance_id, user_id, status, checked_in_at, created_at, updated_at
	`

	var info InstanceInfo
	var reg Registration
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &info, lockQuery, instanceID, gymID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInstanceNotFound
			}
			return err
		}
		if info.Status != "scheduled" {
			return ErrInstanceNotOpen
		}

		member, err := db.Exists(ctx, tx, memberQuery, gymID, userID)
		if err != nil {
			return err
		}
		if !member {
			return ErrNotGymMember
		}

		var counts struct {
			Holding int `db:"holding"`
			Mine    int `db:"mine"`
		}
		if err := tx.GetContext(ctx, &counts, countQuery, instanceID, userID); err != nil {
			return err
		}
		if counts.Mine > 0 {
			return ErrAlreadyRegistered
		}
		if counts.Holding >= info.MaxCapacity {
			return ErrClassFull
		}

		if err := tx.GetContext(ctx, &reg, insertQuery, instanceID, userID); err != nil {
			if db.IsUniqueViolation(err) {
				return ErrAlreadyRegistered
			}
			if db.IsForeignKeyViolation(err) {
				return ErrUnknownMember
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &reg, &info, nil
}

func (r *repository) Transition(ctx context.Context, gymID, registrationID, ownerID string, apply rule, now time.Time) (*Registration, bool, error) {
	lockQuery := `
		SELECT ` + registrationColumns + `
		FROM class_registrations r
		JOIN class_instances ci ON ci.id = r.class_instance_id
		WHERE r.id = $1 AND ci.gym_id = $2
		  AND ($3 = '' OR r.user_id::text = $3)
		FOR UPDATE OF r
	`
	updateQuery := `
		UPDATE class_registrations
		SET status = $2, checked_in_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	var reg Registration
	changed := false
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &reg, lockQuery, registrationID, gymID, ownerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRegistrationNotFound
			}
			return err
		}

		next, ok, err := apply(reg.Status)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		var checkedInAt *time.Time
		if next == StatusCheckedIn {
			checkedInAt = &now
		}
		if err := tx.GetContext(ctx, &reg.UpdatedAt, updateQuery, registrationID, next, checkedInAt); err != nil {
			return err
		}
		reg.Status = next
		reg.CheckedInAt = checkedInAt
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &reg, changed, nil
}

func (r *repository) GetRecipient(ctx context.Context, userID string) (*email.Recipient, error) {
	query := `
		SELECT email, COALESCE(full_name, '') AS full_name
		FROM user_profiles
		WHERE id = $1
	`

	var rcpt email.Recipient
	if err := r.db.GetContext(ctx, &rcpt, query, userID); err != nil {
		return nil, err
	}
	return &rcpt, nil
}
