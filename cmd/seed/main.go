package main

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"tiketbus/internal/buses"
	"tiketbus/internal/routes"
	"tiketbus/internal/shared/config"
	"tiketbus/internal/shared/database"
	"tiketbus/internal/users"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db        *database.DB
	userRepo  users.Repository
	busRepo   buses.Repository
	routeRepo routes.Repository
}

func main() {
	fmt.Println("🌱 Starting TiketBus Database Seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:        db,
		userRepo:  users.NewRepository(db.GetPostgreSQL()),
		busRepo:   buses.NewRepository(db.GetPostgreSQL()),
		routeRepo: routes.NewRepository(db.GetPostgreSQL()),
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"payments",
		"bookings",
		"schedules",
		"seats",
		"buses",
		"routes",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds the fleet, the route network and demo users. Schedules are
// not seeded: they materialize lazily from route and bus data on demand.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedBuses(ctx); err != nil {
		return fmt.Errorf("failed to seed buses: %w", err)
	}

	if err := s.SeedRoutes(ctx); err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}

	// Clear Redis so stale rate limit windows do not survive a reseed
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis: %v", err)
		}
	}

	return nil
}

// SeedUsers creates demo accounts
func (s *Seeder) SeedUsers(ctx context.Context) error {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []users.User{
		{Name: "Test User", Email: "test@example.com", Phone: "+6281234567890"},
		{Name: "Budi Santoso", Email: "budi@example.com", Phone: "+6281298765432"},
	}

	for _, user := range usersData {
		user.PasswordHash = string(hashedPassword)
		if err := s.userRepo.Create(ctx, &user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.Email, err)
		}
		fmt.Printf("    ✅ Created user: %s\n", user.Email)
	}

	fmt.Println("    📧 Demo login: test@example.com / password123")
	return nil
}

// SeedBuses creates the fleet of popular Indonesian operators with their seats
func (s *Seeder) SeedBuses(ctx context.Context) error {
	fmt.Println("  🚌 Seeding buses...")

	busData := []buses.Bus{
		{Operator: "Primajasa", Type: "AC Seater", TotalSeats: 40,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Reading Light"}},
		{Operator: "Pahala Kencana", Type: "AC Sleeper", TotalSeats: 30,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Blanket", "Pillow"}},
		{Operator: "Sinar Jaya", Type: "Executive", TotalSeats: 35,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Snack", "Water"}},
		{Operator: "Rosalia Indah", Type: "AC Executive", TotalSeats: 32,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Entertainment", "Snack"}},
		{Operator: "Harapan Jaya", Type: "AC Seater", TotalSeats: 45,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Reading Light"}},
		{Operator: "Gunung Harta", Type: "AC Sleeper", TotalSeats: 28,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Blanket", "Pillow", "Entertainment"}},
		{Operator: "Kramat Djati", Type: "Executive", TotalSeats: 36,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Snack", "Water", "Reading Light"}},
		{Operator: "Budiman", Type: "AC Seater", TotalSeats: 42,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Reading Light"}},
		{Operator: "Lorena", Type: "AC Executive", TotalSeats: 34,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Entertainment", "Snack", "Water"}},
		{Operator: "Nusantara", Type: "AC Sleeper", TotalSeats: 26,
			Amenities: []string{"WiFi", "Charging Port", "AC", "Blanket", "Pillow", "Entertainment", "Meal"}},
	}

	for i := range busData {
		bus := &busData[i]

		// Four seats per row: the outer pair sits at the windows.
		bus.Seats = make([]buses.Seat, 0, bus.TotalSeats)
		for n := 1; n <= bus.TotalSeats; n++ {
			seatType := buses.SeatTypeAisle
			if n%4 == 1 || n%4 == 0 {
				seatType = buses.SeatTypeWindow
			}
			bus.Seats = append(bus.Seats, buses.Seat{
				Number: strconv.Itoa(n),
				Type:   seatType,
			})
		}

		if err := s.busRepo.Create(ctx, bus); err != nil {
			return fmt.Errorf("failed to create bus %s: %w", bus.Operator, err)
		}

		fmt.Printf("    ✅ Created bus: %s (%s, %d seats)\n", bus.Operator, bus.Type, bus.TotalSeats)
	}

	return nil
}

// SeedRoutes creates popular routes across Indonesia
func (s *Seeder) SeedRoutes(ctx context.Context) error {
	fmt.Println("  🗺️  Seeding routes...")

	routeData := []routes.Route{
		// Java Island - Most Popular Routes
		{Origin: "Jakarta", Destination: "Bandung", Distance: 150, Duration: 180, BaseFare: 150000},
		{Origin: "Jakarta", Destination: "Yogyakarta", Distance: 560, Duration: 480, BaseFare: 250000},
		{Origin: "Jakarta", Destination: "Surabaya", Distance: 800, Duration: 720, BaseFare: 350000},
		{Origin: "Jakarta", Destination: "Solo", Distance: 520, Duration: 420, BaseFare: 220000},
		{Origin: "Jakarta", Destination: "Semarang", Distance: 450, Duration: 360, BaseFare: 200000},
		{Origin: "Bandung", Destination: "Yogyakarta", Distance: 420, Duration: 360, BaseFare: 180000},
		{Origin: "Surabaya", Destination: "Malang", Distance: 90, Duration: 120, BaseFare: 100000},
		{Origin: "Surabaya", Destination: "Yogyakarta", Distance: 320, Duration: 300, BaseFare: 160000},
		{Origin: "Yogyakarta", Destination: "Solo", Distance: 65, Duration: 90, BaseFare: 80000},
		{Origin: "Semarang", Destination: "Yogyakarta", Distance: 120, Duration: 150, BaseFare: 90000},

		// Sumatra Island Routes
		{Origin: "Medan", Destination: "Padang", Distance: 460, Duration: 360, BaseFare: 200000},
		{Origin: "Medan", Destination: "Pekanbaru", Distance: 350, Duration: 300, BaseFare: 180000},
		{Origin: "Medan", Destination: "Banda Aceh", Distance: 360, Duration: 420, BaseFare: 220000},
		{Origin: "Padang", Destination: "Bukittinggi", Distance: 90, Duration: 120, BaseFare: 75000},
		{Origin: "Palembang", Destination: "Lampung", Distance: 240, Duration: 240, BaseFare: 120000},
		{Origin: "Pekanbaru", Destination: "Padang", Distance: 280, Duration: 300, BaseFare: 150000},

		// Kalimantan Routes
		{Origin: "Balikpapan", Destination: "Samarinda", Distance: 120, Duration: 150, BaseFare: 85000},
		{Origin: "Pontianak", Destination: "Singkawang", Distance: 145, Duration: 180, BaseFare: 95000},
		{Origin: "Banjarmasin", Destination: "Martapura", Distance: 40, Duration: 60, BaseFare: 50000},

		// Sulawesi Routes
		{Origin: "Makassar", Destination: "Pare-Pare", Distance: 155, Duration: 180, BaseFare: 100000},
		{Origin: "Manado", Destination: "Tomohon", Distance: 25, Duration: 45, BaseFare: 40000},

		// Bali Routes
		{Origin: "Denpasar", Destination: "Ubud", Distance: 35, Duration: 60, BaseFare: 60000},
		{Origin: "Denpasar", Destination: "Singaraja", Distance: 85, Duration: 120, BaseFare: 80000},

		// Inter-Island Popular Routes
		{Origin: "Jakarta", Destination: "Denpasar", Distance: 1150, Duration: 1200, BaseFare: 450000},
	}

	for i := range routeData {
		route := &routeData[i]
		if err := s.routeRepo.Create(ctx, route); err != nil {
			return fmt.Errorf("failed to create route %s-%s: %w", route.Origin, route.Destination, err)
		}
	}

	fmt.Printf("    ✅ Created %d routes\n", len(routeData))
	return nil
}
