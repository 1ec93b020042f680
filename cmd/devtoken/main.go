// Command devtoken mints an access token for local development, standing in
// for a sign-in flow. Pick the role to act as staff or as a member.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"rocketfist/internal/auth"
	"rocketfist/internal/config"
	"rocketfist/internal/logger"

	"github.com/google/uuid"
)

func main() {
	role := flag.String("role", auth.RoleOwner, "role carried by the token")
	userID := flag.String("user", "", "user profile id (random when empty)")
	email := flag.String("email", "dev@rocketfist.app", "email claim")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if !validRole(*role) {
		logger.Fatal("Unknown role", "role", *role)
	}

	id := *userID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		logger.Fatal("User id must be a UUID", "user", id)
	}

	token, err := auth.GenerateAccessToken(id, *email, *role, cfg.JWTSecret, *ttl)
	if err != nil {
		logger.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Fprintln(os.Stdout, token)
}

func validRole(role string) bool {
	return role == auth.RoleMember || auth.IsStaff(role)
}
