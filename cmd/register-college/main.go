package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/config"
	"github.com/careerbridge/careerbridge-backend/internal/database"
	"github.com/careerbridge/careerbridge-backend/internal/identity"
	"github.com/careerbridge/careerbridge-backend/internal/logger"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/careerbridge/careerbridge-backend/internal/validator"
	"golang.org/x/term"
)

func main() {
	verify := flag.Bool("verify", false, "List the college in the public directory right away")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.StorageBackend == config.StorageMemory || cfg.IdentityProvider == config.IdentityLocal {
		log.Fatal().Msg("register-college needs persistent storage and a remote identity provider")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// ─── Connect Storage ───────────────────────────────────────────────
	backend, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer backend.Close()

	provider, err := identity.FromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure identity provider")
	}

	// ─── Initialize Services ───────────────────────────────────────────
	collegeService := service.NewCollegeService(backend.Stores, log)
	studentService := service.NewStudentService(backend.Stores, log)
	authService := service.NewAuthService(provider, backend.Cache, studentService, collegeService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) string {
		fmt.Print(label)
		v, _ := reader.ReadString('\n')
		return strings.TrimSpace(v)
	}

	fmt.Println("=== Register College Account ===")

	req := model.RegisterCollegeRequest{
		CollegeRequest: model.CollegeRequest{
			Name:        prompt("College name: "),
			Location:    prompt("Location: "),
			Country:     prompt("Country: "),
			Description: prompt("Description (optional): "),
			LogoURL:     prompt("Logo URL (optional): "),
		},
		Email: prompt("Account email: "),
	}

	fmt.Print("Account password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password")
	}
	req.Password = string(bytePassword)

	validator.Setup()
	if fields := validator.Request(&req); fields != nil {
		for field, msg := range fields {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		log.Fatal().Msg("Invalid college details")
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	college, err := authService.RegisterCollege(ctx, req)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register college")
	}

	if *verify {
		if college, err = collegeService.SetVerified(ctx, college.ID, true); err != nil {
			log.Fatal().Err(err).Msg("Failed to verify college")
		}
	}

	fmt.Printf("\nSuccess! College '%s' created with ID: %s (verified: %t)\n", college.Name, college.ID, college.IsVerified)
}
