package seed

import (
	"rocketfist/internal/auth"
	"rocketfist/internal/class"
)

// Fixture is the demo gym rebuilt by the seeder.
type Fixture struct {
	GymName  string
	Timezone string
	Users    []UserInput
	Classes  []ClassInput
	Plans    []PlanInput
	// Weeks are the expansion offsets around the current week.
	Weeks []int
}

type UserInput struct {
	Email    string
	FullName string
	Role     string
}

type ClassInput struct {
	Name        string
	Description string
	Discipline  string
	SkillLevel  string
	Duration    int
	// CoachIndex picks from the fixture's coaches in order.
	CoachIndex int
	Patterns   []class.PatternInput
}

type PlanInput struct {
	Name                  string
	Description           string
	PriceCents            int64
	BillingInterval       string
	MaxClassesPerInterval *int
}

func intPtr(n int) *int { return &n }

// Nova returns the Nova Combat Academy fixture.
func Nova() Fixture {
	return Fixture{
		GymName:  "Nova Combat Academy",
		Timezone: "America/New_York",
		Users: []UserInput{
			{"dylan.owner@example.com", "Dylan Owner", auth.RoleOwner},
			{"alex.owner@example.com", "Alex Owner", auth.RoleOwner},
			{"maria.coach@example.com", "Maria Coach", auth.RoleCoach},
			{"jake.coach@example.com", "Jake Coach", auth.RoleCoach},
			{"sam.employee@example.com", "Sam Employee", auth.RoleEmployee},
			{"taylor.employee@example.com", "Taylor Employee", auth.RoleEmployee},
			{"chris.member@example.com", "Chris Member", auth.RoleMember},
			{"jordan.member@example.com", "Jordan Member", auth.RoleMember},
			{"lee.member@example.com", "Lee Member", auth.RoleMember},
			{"morgan.member@example.com", "Morgan Member", auth.RoleMember},
			{"robin.member@example.com", "Robin Member", auth.RoleMember},
			{"casey.member@example.com", "Casey Member", auth.RoleMember},
		},
		Classes: []ClassInput{
			{
				Name:        "Beginner BJJ",
				Description: "Introduction to Brazilian Jiu-Jitsu fundamentals for beginners.",
				Discipline:  "bjj",
				SkillLevel:  "beginner",
				Duration:    60,
				CoachIndex:  0,
				Patterns:    []class.PatternInput{{DayOfWeek: 1, Hour: 18}, {DayOfWeek: 3, Hour: 18}, {DayOfWeek: 5, Hour: 18}},
			},
			{
				Name:        "All-Levels BJJ",
				Description: "BJJ training for all skill levels with rolling sessions.",
				Discipline:  "bjj",
				SkillLevel:  "all-levels",
				Duration:    90,
				CoachIndex:  0,
				Patterns:    []class.PatternInput{{DayOfWeek: 2, Hour: 19, Minute: 30}, {DayOfWeek: 4, Hour: 19, Minute: 30}},
			},
			{
				Name:        "Muay Thai Fundamentals",
				Description: "Punches, kicks, elbows and knees for newcomers.",
				Discipline:  "muay_thai",
				SkillLevel:  "beginner",
				Duration:    60,
				CoachIndex:  1,
				Patterns:    []class.PatternInput{{DayOfWeek: 1, Hour: 19, Minute: 30}, {DayOfWeek: 3, Hour: 19, Minute: 30}},
			},
			{
				Name:        "Striking Conditioning",
				Description: "High-intensity conditioning focused on striking cardio and technique.",
				Discipline:  "striking",
				SkillLevel:  "all-levels",
				Duration:    45,
				CoachIndex:  1,
				Patterns:    []class.PatternInput{{DayOfWeek: 6, Hour: 11}},
			},
		},
		Plans: []PlanInput{
			{
				Name:            "Unlimited Training",
				Description:     "Unlimited access to all classes and open mat sessions.",
				PriceCents:      14900,
				BillingInterval: "month",
			},
			{
				Name:                  "8 Classes / Month",
				Description:           "For busy schedules: eight classes per month.",
				PriceCents:            9900,
				BillingInterval:       "month",
				MaxClassesPerInterval: intPtr(8),
			},
		},
		Weeks: []int{-1, 0, 1},
	}
}

// usersWithRole returns the seeded users holding role, in fixture order.
func usersWithRole(users []User, role string) []User {
	var out []User
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}
