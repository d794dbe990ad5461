package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lib/pq"
	"github.com/mrashed-dev/doctors-portal-server/cmd/api"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"github.com/mrashed-dev/doctors-portal-server/db"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		case "seed":
			runSeed()
			return
		case "clear-db":
			runDatabaseClear()
			return
		default:
			log.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	startServer()
}

func runMigrations() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		log.Println("Database connection closed")
	}()
	log.Println("Connected to the database for migrations")

	if err := performMigrations(DB); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
	log.Println("Migrations completed successfully")
}

func performMigrations(DB *gorm.DB) error {

	migrations := map[interface{}]string{
		&models.AppointmentOption{}: "AppointmentOption",
		&models.Booking{}:           "Booking",
		&models.User{}:              "User",
		&models.Doctor{}:            "Doctor",
		&models.Payment{}:           "Payment",
	}

	log.Println("Starting database migrations...")
	for model, name := range migrations {
		log.Printf("Migrating %s table...", name)
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", name, err)
		}
		log.Printf("%s migration successful", name)
	}

	log.Println("All migrations completed successfully")
	return nil
}

// runSeed loads the treatment catalog. Safe to run repeatedly; options are
// matched by name.
func runSeed() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		log.Println("Database connection closed")
	}()

	slots := pq.StringArray{
		"08.00 AM - 08.30 AM",
		"08.30 AM - 09.00 AM",
		"09.00 AM - 09.30 AM",
		"09.30 AM - 10.00 AM",
		"10.00 AM - 10.30 AM",
		"10.30 AM - 11.00 AM",
		"11.00 AM - 11.30 AM",
	}

	options := []models.AppointmentOption{
		{Name: "Teeth Orthodontics", Slots: slots, Price: 100},
		{Name: "Cosmetic Dentistry", Slots: slots, Price: 200},
		{Name: "Teeth Cleaning", Slots: slots, Price: 60},
		{Name: "Cavity Protection", Slots: slots, Price: 80},
		{Name: "Pediatric Dental", Slots: slots, Price: 70},
		{Name: "Oral Surgery", Slots: slots, Price: 300},
	}

	for _, option := range options {
		result := DB.Where("name = ?", option.Name).FirstOrCreate(&option)
		if result.Error != nil {
			log.Fatalf("Error seeding option %s: %v", option.Name, result.Error)
		}
		log.Printf("Seeded appointment option %s", option.Name)
	}

	log.Println("Seeding completed successfully")
}

func startServer() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		log.Println("Database connection closed")
	}()
	log.Println("Connected to the database")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "5000"
	}
	server := api.NewApiServer(":"+port, DB)

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Server running on port %s", port)

	<-quit
	log.Println("Shutting down server...")
}

func clearDatabase(DB *gorm.DB) error {
	tables := []interface{}{
		&models.Payment{},
		&models.Booking{},
		&models.Doctor{},
		&models.User{},
		&models.AppointmentOption{},
	}

	log.Println("Dropping tables...")

	for _, table := range tables {
		if err := DB.Migrator().DropTable(table); err != nil {
			log.Printf("Warning dropping table %T: %v", table, err)
		} else {
			log.Printf("Table %T dropped", table)
		}
	}

	return nil
}

func runDatabaseClear() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		log.Println("Database connection closed")
	}()

	log.Println("Preparing to clear database...")

	var confirmation string
	fmt.Print("Are you sure you want to clear the database? (yes/no): ")
	fmt.Scanln(&confirmation)

	if confirmation != "yes" {
		log.Println("Database clearing cancelled.")
		return
	}

	if err := clearDatabase(DB); err != nil {
		log.Fatalf("Error clearing database: %v", err)
	}

	log.Println("Database cleared successfully")
}
