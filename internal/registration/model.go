package registration

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusCheckedIn Status = "checked_in"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusReserved, StatusCheckedIn, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", fmt.Errorf("unknown registration status %q", s)
}

func (s *Status) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", src)
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

// HoldsSpot reports whether the registration counts against capacity.
func (s Status) HoldsSpot() bool {
	return s == StatusReserved || s == StatusCheckedIn
}

type Registration struct {
	ID              string     `db:"id" json:"id"`
	ClassInstanceID string     `db:"class_instance_id" json:"class_instance_id"`
	UserID          string     `db:"user_id" json:"user_id"`
	Status          Status     `db:"status" json:"status"`
	CheckedInAt     *time.Time `db:"checked_in_at" json:"checked_in_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// InstanceInfo is the class instance header of a roster.
type InstanceInfo struct {
	ID          string    `db:"id" json:"id"`
	GymID       string    `db:"gym_id" json:"gym_id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	ClassName   string    `db:"class_name" json:"class_name"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	MaxCapacity int       `db:"max_capacity" json:"max_capacity"`
	Status      string    `db:"status" json:"status"`
}

type RosterEntry struct {
	RegistrationID string     `db:"id" json:"registration_id"`
	UserID         string     `db:"user_id" json:"user_id"`
	FullName       string     `db:"full_name" json:"full_name"`
	Email          string     `db:"email" json:"email"`
	Status         Status     `db:"status" json:"status"`
	CheckedInAt    *time.Time `db:"checked_in_at" json:"checked_in_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type Roster struct {
	Instance       InstanceInfo  `json:"instance"`
	ReservedCount  int           `json:"reserved_count"`
	CheckedInCount int           `json:"checked_in_count"`
	Entries        []RosterEntry `json:"entries"`
}

// Actor is the caller on whose behalf a registration is created or
// changed. Members may only act on their own registrations.
type Actor struct {
	UserID string
	Staff  bool
}

type RegisterRequest struct {
	// Staff may register another member; members always register themselves.
	UserID *string `json:"user_id,omitempty" binding:"omitempty,uuid"`
}

type InstanceURI struct {
	GymID      string `uri:"gymID" binding:"required,uuid"`
	InstanceID string `uri:"instanceID" binding:"required,uuid"`
}

type RegistrationURI struct {
	GymID          string `uri:"gymID" binding:"required,uuid"`
	RegistrationID string `uri:"registrationID" binding:"required,uuid"`
}
