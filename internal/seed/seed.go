// Package seed rebuilds a demo gym with classes, members, billing history
// and registrations. Every step returns what the next one needs.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"rocketfist/internal/auth"
	"rocketfist/internal/class"
	"rocketfist/internal/gym"
	"rocketfist/internal/logger"
	"rocketfist/internal/schedule"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
)

type User struct {
	ID       string
	Email    string
	FullName string
	Role     string
}

type Plan struct {
	ID         string
	PriceCents int64
}

type Membership struct {
	ID     string
	UserID string
	Plan   Plan
}

type Instance struct {
	ID        string    `db:"id"`
	StartTime time.Time `db:"start_time"`
}

// Summary counts what one run created.
type Summary struct {
	GymID         string
	Users         int
	Classes       int
	Instances     int
	Plans         int
	Memberships   int
	Payments      int
	Registrations int
	CheckedIn     int
}

type Seeder struct {
	db       *sqlx.DB
	gyms     gym.Service
	classes  class.Service
	schedule schedule.Service
	rng      *rand.Rand
	now      time.Time
}

// New wires the seeder to the regular gym, class and schedule services so
// instances go through the same idempotent upsert as the API. seed makes
// the member selection reproducible.
func New(db *sqlx.DB, seed int64, now time.Time) *Seeder {
	gyms := gym.NewService(gym.NewRepository(db))
	classes := class.NewService(class.NewRepository(db), gyms)
	return &Seeder{
		db:       db,
		gyms:     gyms,
		classes:  classes,
		schedule: schedule.NewService(schedule.NewRepository(db), gyms, classes, nil, 0),
		rng:      rand.New(rand.NewSource(seed)),
		now:      now,
	}
}

func (s *Seeder) Run(ctx context.Context, fx Fixture) (*Summary, error) {
	if err := s.cleanup(ctx, slug.Make(fx.GymName)); err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}

	g, err := s.gyms.CreateGym(ctx, gym.CreateGymRequest{Name: fx.GymName, Timezone: fx.Timezone})
	if err != nil {
		return nil, fmt.Errorf("create gym: %w", err)
	}
	logger.Info("seeded gym", "gym_id", g.ID, "slug", g.Slug)

	users, err := s.upsertUsers(ctx, g.ID, fx.Users)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}

	classIDs, err := s.createClasses(ctx, g.ID, fx.Classes, usersWithRole(users, auth.RoleCoach))
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}

	instances, err := s.expand(ctx, g.ID, classIDs, fx.Weeks)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}

	plans, err := s.insertPlans(ctx, g.ID, fx.Plans)
	if err != nil {
		return nil, fmt.Errorf("plans: %w", err)
	}

	members := usersWithRole(users, auth.RoleMember)
	memberships, err := s.insertMemberships(ctx, g, members, plans)
	if err != nil {
		return nil, fmt.Errorf("memberships: %w", err)
	}

	payments, err := s.insertPayments(ctx, g, memberships)
	if err != nil {
		return nil, fmt.Errorf("payments: %w", err)
	}

	registered, checkedIn, err := s.insertRegistrations(ctx, instances, members)
	if err != nil {
		return nil, fmt.Errorf("registrations: %w", err)
	}

	return &Summary{
		GymID:         g.ID,
		Users:         len(users),
		Classes:       len(classIDs),
		Instances:     len(instances),
		Plans:         len(plans),
		Memberships:   len(memberships),
		Payments:      payments,
		Registrations: registered,
		CheckedIn:     checkedIn,
	}, nil
}

// cleanup removes the previous copy of the gym. Everything it owns goes
// with it through ON DELETE CASCADE.
func (s *Seeder) cleanup(ctx context.Context, gymSlug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM gyms WHERE slug = $1`, gymSlug)
	return err
}

func (s *Seeder) upsertUsers(ctx context.Context, gymID string, inputs []UserInput) ([]User, error) {
	profileQuery := `
		INSERT INTO user_profiles (id, email, full_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = NOW()
		RETURNING id
	`
	gymUserQuery := `
		INSERT INTO gym_users (gym_id, user_id, role)
		VALUES ($1, $2, $3)
	`

	users := make([]User, 0, len(inputs))
	for _, in := range inputs {
		var id string
		if err := s.db.GetContext(ctx, &id, profileQuery, uuid.NewString(), in.Email, in.FullName); err != nil {
			return nil, fmt.Errorf("profile %s: %w", in.Email, err)
		}
		if _, err := s.db.ExecContext(ctx, gymUserQuery, gymID, id, in.Role); err != nil {
			return nil, fmt.Errorf("gym user %s: %w", in.Email, err)
		}
		users = append(users, User{ID: id, Email: in.Email, FullName: in.FullName, Role: in.Role})
	}
	return users, nil
}

func (s *Seeder) createClasses(ctx context.Context, gymID string, inputs []ClassInput, coaches []User) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		req := class.CreateClassRequest{
			Name:                   in.Name,
			Description:            &in.Description,
			Discipline:             in.Discipline,
			SkillLevel:             in.SkillLevel,
			DefaultDurationMinutes: in.Duration,
			Patterns:               in.Patterns,
		}
		if in.CoachIndex < len(coaches) {
			req.DefaultCoachUserID = &coaches[in.CoachIndex].ID
		}

		detail, err := s.classes.CreateClass(ctx, gymID, req)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", in.Name, err)
		}
		ids = append(ids, detail.ID)
	}
	return ids, nil
}

func (s *Seeder) expand(ctx context.Context, gymID string, classIDs []string, weeks []int) ([]Instance, error) {
	anchor := s.now
	created := 0
	for _, id := range classIDs {
		res, err := s.schedule.ExpandClass(ctx, gymID, id, schedule.ExpandRequest{Weeks: weeks, Anchor: &anchor})
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", id, err)
		}
		created += res.Created
	}
	logger.Info("seeded instances", "created", created)

	instances := []Instance{}
	err := s.db.SelectContext(ctx, &instances, `
		SELECT id, start_time
		FROM class_instances
		WHERE gym_id = $1
		ORDER BY start_time ASC
	`, gymID)
	return instances, err
}

func (s *Seeder) insertPlans(ctx context.Context, gymID string, inputs []PlanInput) ([]Plan, error) {
	query := `
		INSERT INTO membership_plans (gym_id, name, description, price_cents, billing_interval, max_classes_per_interval)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	plans := make([]Plan, 0, len(inputs))
	for _, in := range inputs {
		var id string
		if err := s.db.GetContext(ctx, &id, query, gymID, in.Name, in.Description, in.PriceCents, in.BillingInterval, in.MaxClassesPerInterval); err != nil {
			return nil, fmt.Errorf("plan %q: %w", in.Name, err)
		}
		plans = append(plans, Plan{ID: id, PriceCents: in.PriceCents})
	}
	return plans, nil
}

// insertMemberships gives the first half of the members the first plan and
// the rest the second.
func (s *Seeder) insertMemberships(ctx context.Context, g *gym.Gym, members []User, plans []Plan) ([]Membership, error) {
	if len(plans) == 0 {
		return nil, nil
	}
	query := `
		INSERT INTO memberships (gym_id, user_id, membership_plan_id, status, start_date)
		VALUES ($1, $2, $3, 'active', $4)
		RETURNING id
	`
	startDate := monthStart(s.now.In(g.Location()), 0).Format("2006-01-02")

	memberships := make([]Membership, 0, len(members))
	for i, m := range members {
		plan := plans[planIndex(i, len(members), len(plans))]
		var id string
		if err := s.db.GetContext(ctx, &id, query, g.ID, m.ID, plan.ID, startDate); err != nil {
			return nil, fmt.Errorf("membership for %s: %w", m.Email, err)
		}
		memberships = append(memberships, Membership{ID: id, UserID: m.ID, Plan: plan})
	}
	return memberships, nil
}

// insertPayments records a succeeded payment per membership for last month
// and this month, a few days after each month starts.
func (s *Seeder) insertPayments(ctx context.Context, g *gym.Gym, memberships []Membership) (int, error) {
	query := `
		INSERT INTO payments (gym_id, user_id, membership_id, amount_cents, currency, status, paid_at)
		VALUES ($1, $2, $3, $4, 'USD', 'succeeded', $5)
	`
	local := s.now.In(g.Location())

	n := 0
	for _, m := range memberships {
		for _, monthsAgo := range []int{1, 0} {
			paidAt := paymentTime(monthStart(local, monthsAgo), s.rng.Intn(5))
			if paidAt.After(s.now) {
				paidAt = s.now
			}
			if _, err := s.db.ExecContext(ctx, query, g.ID, m.UserID, m.ID, m.Plan.PriceCents, paidAt); err != nil {
				return n, fmt.Errorf("payment for %s: %w", m.UserID, err)
			}
			n++
		}
	}
	return n, nil
}

// insertRegistrations books three to five members into every instance.
// Past instances are recorded as attended at their start time.
func (s *Seeder) insertRegistrations(ctx context.Context, instances []Instance, members []User) (int, int, error) {
	query := `
		INSERT INTO class_registrations (class_instance_id, user_id, status, checked_in_at)
		VALUES ($1, $2, $3, $4)
	`

	registered, checkedIn := 0, 0
	for _, inst := range instances {
		status, at := registrationState(inst.StartTime, s.now)
		for _, m := range pickMembers(s.rng, members, 3+s.rng.Intn(3)) {
			if _, err := s.db.ExecContext(ctx, query, inst.ID, m.ID, status, at); err != nil {
				return registered, checkedIn, fmt.Errorf("registration for %s: %w", inst.ID, err)
			}
			registered++
			if at != nil {
				checkedIn++
			}
		}
	}
	return registered, checkedIn, nil
}

func registrationState(start, now time.Time) (string, *time.Time) {
	if start.Before(now) {
		return "checked_in", &start
	}
	return "reserved", nil
}

// pickMembers returns n distinct members in random order.
func pickMembers(rng *rand.Rand, members []User, n int) []User {
	if n > len(members) {
		n = len(members)
	}
	picked := make([]User, 0, n)
	for _, i := range rng.Perm(len(members))[:n] {
		picked = append(picked, members[i])
	}
	return picked
}

func planIndex(i, members, plans int) int {
	if plans < 2 {
		return 0
	}
	if i < (members+1)/2 {
		return 0
	}
	return 1
}

func monthStart(t time.Time, monthsAgo int) time.Time {
	return time.Date(t.Year(), t.Month()-time.Month(monthsAgo), 1, 0, 0, 0, 0, t.Location())
}

func paymentTime(month time.Time, dayOffset int) time.Time {
	return month.AddDate(0, 0, dayOffset).Add(12 * time.Hour)
}
