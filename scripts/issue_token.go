//go:build ignore

// Issues a development bearer token for a profile owner.
//
//	go run scripts/issue_token.go -email dev@example.com
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/khoahotran/talent-profile/internal/config"
	"github.com/khoahotran/talent-profile/pkg/auth"
)

func main() {
	owner := flag.String("owner", "", "owner id (a new one is generated when empty)")
	email := flag.String("email", "dev@example.com", "email claim")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ownerID := uuid.New()
	if *owner != "" {
		if ownerID, err = uuid.Parse(*owner); err != nil {
			log.Fatalf("invalid owner id: %v", err)
		}
	}

	token, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan).GenerateToken(ownerID, *email)
	if err != nil {
		log.Fatalf("cannot issue token: %v", err)
	}

	fmt.Printf("owner: %s\n%s\n", ownerID, token)
}
