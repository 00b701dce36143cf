package main

import (
	"fmt"
	"log"

	"deskhive/internal/seats"
	"deskhive/internal/shared/config"
	"deskhive/internal/shared/database"
	"deskhive/internal/users"

	"github.com/joho/godotenv"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting DeskHive database seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"long_term_allocations",
		"seats",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds users and the floor plan.
func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.SeedSeats(); err != nil {
		return fmt.Errorf("failed to seed seats: %w", err)
	}
	return nil
}

func (s *Seeder) SeedUsers() error {
	seedUsers := []users.User{
		{
			Email:    "admin@company.com",
			Name:     "Admin User",
			Role:     users.RoleAdmin,
			IsActive: true,
		},
		{
			Email:    "employee@company.com",
			Name:     "John Employee",
			Role:     users.RoleEmployee,
			IsActive: true,
		},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", seedUsers[i].Email, err)
		}
		fmt.Printf("  Created user: %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
	}

	return nil
}

// SeedSeats creates the default floor plan: four solo desks plus eighty
// team-cluster desks with monitors.
func (s *Seeder) SeedSeats() error {
	floorPlan := make([]seats.Seat, 0, 84)

	for i := 1; i <= 4; i++ {
		floorPlan = append(floorPlan, seats.Seat{
			SeatCode:   fmt.Sprintf("S%d", i),
			Type:       seats.TypeSolo,
			HasMonitor: false,
		})
	}

	for i := 1; i <= 80; i++ {
		floorPlan = append(floorPlan, seats.Seat{
			SeatCode:   fmt.Sprintf("T%d", i),
			Type:       seats.TypeTeamCluster,
			HasMonitor: true,
		})
	}

	if err := s.db.PostgreSQL.CreateInBatches(&floorPlan, 50).Error; err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}
	fmt.Printf("  Created %d seats\n", len(floorPlan))

	return nil
}
