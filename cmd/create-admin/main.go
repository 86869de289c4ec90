// Command create-admin adds an admin account, either with generated
// credentials or with credentials typed at the prompt (-interactive).
package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
)

const minPasswordLength = 8

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueUsername tries until a unique username is found
func generateUniqueUsername(ctx context.Context, db *database.DBinstanceStruct) (string, error) {
	for {
		username := "admin_" + generateRandomString(4)
		var count int64
		if err := db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	return strings.TrimSpace(input)
}

// readCredentials asks for username, email and a confirmed password
func readCredentials() (username, email, password string) {
	reader := bufio.NewReader(os.Stdin)

	username = prompt(reader, "Enter username: ")
	email = prompt(reader, "Enter email: ")
	password = prompt(reader, "Enter password: ")
	confirm := prompt(reader, "Confirm password: ")

	if password != confirm {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}
	if len(password) < minPasswordLength {
		fmt.Printf("Password should be at least %d characters.\n", minPasswordLength)
		os.Exit(1)
	}
	return username, email, password
}

func main() {
	interactive := flag.Bool("interactive", false, "prompt for username, email and password")
	flag.Parse()

	var cfg database.DBConfig
	if err := envconfig.Process("DB", &cfg); err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}

	var username, email, password string
	if *interactive {
		username, email, password = readCredentials()
	}

	db, err := database.NewDBInstance(&cfg)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if !*interactive {
		if username, err = generateUniqueUsername(ctx, db); err != nil {
			log.Fatalf("failed to pick username: %v", err)
		}
		email = username + "@localhost"
		password = generateRandomString(8)
	}

	admin := model.User{
		FullName: "Administrator",
		Username: username,
		Email:    email,
	}
	if err := db.CreateAdmin(ctx, &admin, password); err != nil {
		if database.IsUniqueViolation(err) {
			log.Fatal("Username or email already taken")
		}
		log.Fatal("failed to create admin: ", err)
	}

	fmt.Println("Admin account created successfully!")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", admin.Username)
	if !*interactive {
		fmt.Printf("Password: %s\n", password)
	}
	fmt.Println("======================================")
}
