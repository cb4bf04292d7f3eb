// Command seed loads a small sample data set for local development: two
// users (one admin, one regular) and a handful of employees. It also moves
// the identifier counter past the highest seeded sequence so the next
// create allocates a fresh identifier.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/service"
	mongodb "github.com/peopleops/employee-api/internal/infrastructure/db/mongo"
	"github.com/peopleops/employee-api/internal/pkg/config"
	"github.com/peopleops/employee-api/pkg/logger"
)

type seedEmployee struct {
	Name        string
	Department  string
	Salary      float64
	JoiningDate string
	Skills      []string
}

var seedEmployees = []seedEmployee{
	{"Alice Nguyen", "Engineering", 95000, "2022-03-14", []string{"Go", "MongoDB", "Kubernetes"}},
	{"Bruno Castillo", "Engineering", 87000, "2023-01-09", []string{"Go", "SQL"}},
	{"Chitra Rao", "Data", 102000, "2021-07-01", []string{"Python", "SQL", "Airflow"}},
	{"Daniel Okafor", "Sales", 64000, "2023-11-20", []string{"CRM", "Negotiation"}},
	{"Emma Larsen", "HR", 58000, "2020-05-04", []string{"Recruiting", "Onboarding"}},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "employee-seed"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo init failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	employeeRepo := mongodb.NewEmployeeRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	if err := employeeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("employee index creation failed")
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("auth index creation failed")
	}

	seedUsers(ctx, authRepo, log)

	now := time.Now().UTC()
	for i, s := range seedEmployees {
		seq := int64(i + 1)
		employee := &domain.Employee{
			EmployeeID:  service.FormatEmployeeID(seq),
			Seq:         seq,
			Name:        s.Name,
			Department:  s.Department,
			Salary:      s.Salary,
			JoiningDate: s.JoiningDate,
			Skills:      s.Skills,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := employeeRepo.Insert(ctx, employee); err != nil {
			if err == domain.ErrEmployeeExists {
				log.Info().Str("employee_id", employee.EmployeeID).Msg("employee already seeded, skipping")
				continue
			}
			log.Fatal().Err(err).Str("employee_id", employee.EmployeeID).Msg("seed insert failed")
		}
		log.Info().Str("employee_id", employee.EmployeeID).Str("name", s.Name).Msg("employee seeded")
	}

	// Advance the counter to the highest seeded sequence. $max keeps an
	// already-larger counter untouched on re-runs.
	maxSeq := int64(len(seedEmployees))
	_, err = db.Collection("counters").UpdateOne(
		ctx,
		bson.M{"_id": "employee_id"},
		bson.M{"$max": bson.M{"value": maxSeq}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("counter sync failed")
	}

	log.Info().Int("employees", len(seedEmployees)).Msg("seed complete")
}

func seedUsers(ctx context.Context, repo *mongodb.AuthRepository, log zerolog.Logger) {
	users := []struct {
		username, password, role string
	}{
		{"admin", "admin123", domain.RoleAdmin},
		{"jdoe", "password1", domain.RoleUser},
	}

	now := time.Now().UTC()
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash failed")
		}
		_, err = repo.Create(ctx, &domain.User{
			Username:     u.username,
			PasswordHash: string(hash),
			Role:         u.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			if err == domain.ErrUserExists {
				log.Info().Str("username", u.username).Msg("user already seeded, skipping")
				continue
			}
			log.Fatal().Err(err).Str("username", u.username).Msg("seed user failed")
		}
		log.Info().Str("username", u.username).Str("role", u.role).Msg("user seeded")
	}
}
