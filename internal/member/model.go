package member

import "time"

// Member is a gym user flattened with the plan label of their most recent
// non-cancelled membership. ID is the user profile id.
type Member struct {
	ID               string    `db:"id" json:"id"`
	FullName         string    `db:"full_name" json:"full_name"`
	Email            string    `db:"email" json:"email"`
	Role             string    `db:"role" json:"role"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	MembershipPlan   *string   `db:"membership_plan" json:"membership_plan"`
	MembershipStatus *string   `db:"membership_status" json:"membership_status"`
}

type MemberURI struct {
	GymID    string `uri:"gymID" binding:"required,uuid"`
	MemberID string `uri:"memberID" binding:"required,uuid"`
}
