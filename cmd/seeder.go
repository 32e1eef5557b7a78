package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"item_issue_reports", "item_history", "items", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		seedUsers := []struct {
			Username string
			Email    string
			Role     string
		}{
			{"storekeeper", "storekeeper@mail.com", "storekeeper"},
			{"employee1", "employee1@mail.com", "employee"},
			{"employee2", "employee2@mail.com", "employee"},
		}

		for _, u := range seedUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (username, email, password_hash, role, status, created_at, updated_at) VALUES (?, ?, ?, ?, 'active', now(), now())",
				u.Username, u.Email, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		seedItems := []struct {
			Name        string
			Category    string
			Description string
		}{
			{"ThinkPad X1 Carbon", "laptop", "14 inch developer laptop"},
			{"Dell U2723QE", "monitor", "27 inch 4K monitor"},
			{"Logitech MX Keys", "keyboard", "wireless keyboard"},
			{"Herman Miller Aeron", "furniture", "ergonomic office chair"},
			{"Anker USB-C Hub", "accessory", "7-in-1 USB-C hub"},
		}

		for _, it := range seedItems {
			var exists int
			row := db.Raw("SELECT 1 FROM items WHERE name = ?", it.Name).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("item %s already exists, skipping\n", it.Name)
				continue
			}

			if err := db.Exec(
				"INSERT INTO items (name, category, description, availability, status, created_at, updated_at) VALUES (?, ?, ?, true, 'available', now(), now())",
				it.Name, it.Category, it.Description,
			).Error; err != nil {
				log.Fatalf("failed to insert item %s: %v", it.Name, err)
			}
			fmt.Println("Seeded item:", it.Name)
		}

		fmt.Println("Seeding complete")
	},
}
