package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type OAuthClient struct {
	ID         string `gorm:"primaryKey"`
	Secret     string `gorm:"not null"`
	Name       string
	Domain     string
	Role       string `gorm:"default:'service'"`
	Scopes     string
	GrantTypes string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

func main() {
	// Parse command line flags
	role := flag.String("role", "service", "Client role (admin or service)")
	dbPath := flag.String("db", "cardapio.sqlite", "Path to the sqlite database")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Determine client credentials based on role
	var clientID, clientSecret, grants string
	if *role == "admin" {
		clientID = "backoffice-client"
		clientSecret = "backoffice-secret-123"
		grants = "password"
	} else {
		clientID = "dev-client"
		clientSecret = "dev-secret-123"
		grants = "client_credentials"
	}

	// Check if client already exists
	var existing OAuthClient
	if err := db.Where("id = ?", clientID).First(&existing).Error; err == nil {
		fmt.Printf("Development client already exists for role '%s'!\n", *role)
		fmt.Printf("Client ID: %s\n", clientID)
		fmt.Printf("Client Secret: %s\n", clientSecret)
		return
	}

	// Create new client
	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash secret:", err)
	}

	client := OAuthClient{
		ID:         clientID,
		Secret:     string(hash),
		Name:       fmt.Sprintf("Development %s Client", *role),
		Domain:     "http://localhost",
		Role:       *role,
		Scopes:     "read write",
		GrantTypes: grants,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := db.Create(&client).Error; err != nil {
		log.Fatal("Failed to create client:", err)
	}

	fmt.Printf("✓ Development OAuth client created for role '%s'!\n", *role)
	fmt.Printf("Client ID: %s\n", clientID)
	fmt.Printf("Client Secret: %s\n", clientSecret)
	fmt.Println("\nUse these credentials for testing:")
	if *role == "admin" {
		fmt.Printf("curl -X POST http://localhost:8080/oauth/token \\\n")
		fmt.Printf("  -d 'grant_type=password' \\\n")
		fmt.Printf("  -d 'client_id=%s' \\\n", clientID)
		fmt.Printf("  -d 'client_secret=%s' \\\n", clientSecret)
		fmt.Printf("  -d 'username=admin@example.com' \\\n")
		fmt.Printf("  -d 'password=your-password'\n")
	} else {
		fmt.Printf("curl -X POST http://localhost:8080/oauth/token \\\n")
		fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
		fmt.Printf("  -d 'client_id=%s' \\\n", clientID)
		fmt.Printf("  -d 'client_secret=%s'\n", clientSecret)
	}
}
