// CLI tool to create a user with a bcrypt-hashed password and an empty
// profile, optionally seeded with a daily calorie goal.
// Usage: go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// newUser is what the prompts collect; the tags are checked before any
// database work happens.
type newUser struct {
	Name        string  `validate:"required,max=100"`
	Username    string  `validate:"required,alphanum,max=50"`
	Email       string  `validate:"required,email"`
	Password    string  `validate:"required,min=8"`
	CalorieGoal float64 `validate:"omitempty,gt=0,lte=20000"`
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	ask := func(label string) string {
		fmt.Print(label + ": ")
		s, _ := reader.ReadString('\n')
		return strings.TrimSpace(s)
	}

	u := newUser{
		Name:     ask("Name"),
		Username: ask("Username"),
		Email:    strings.ToLower(ask("Email")),
		Password: ask("Password"),
	}
	if goal := ask("Daily calorie goal (blank for default)"); goal != "" {
		v, err := strconv.ParseFloat(goal, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid calorie goal: %v\n", err)
			os.Exit(1)
		}
		u.CalorieGoal = v
	}
	if err := validator.New().Struct(u); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}
	authToken := uuid.New().String()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var userID int
	err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO users (username, email, password, auth_token)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			u.Username, u.Email, string(hash), authToken,
		).Scan(&userID); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		var goal *float64
		if u.CalorieGoal > 0 {
			goal = &u.CalorieGoal
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO profiles (user_id, name, daily_calorie_goal) VALUES ($1, $2, $3)`,
			userID, u.Name, goal); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Username:   %s\n", u.Username)
	fmt.Printf("  Auth Token: %s\n", authToken)
}
