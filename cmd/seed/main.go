package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Rafid41/LMS/config"
	"github.com/Rafid41/LMS/pkg/helpers"
)

var subjectTags = []string{
	"Mathematics", "Physics", "Chemistry", "Biology",
	"Computer Science", "English", "History", "Economics",
}

var timezones = [][2]string{
	{"UTC", "+00:00"},
	{"Asia/Dhaka", "+06:00"},
	{"Asia/Kolkata", "+05:30"},
	{"Europe/London", "+00:00"},
	{"America/New_York", "-05:00"},
}

var languages = [][2]string{
	{"English", "English"},
	{"Bengali", "বাংলা"},
	{"Hindi", "हिन्दी"},
	{"Spanish", "Español"},
	{"Arabic", "العربية"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	seedAdmin(db, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	seedReferences(db)
}

func seedAdmin(db *sql.DB, email, password string) {
	if email == "" || password == "" {
		log.Println("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set; skipping admin user")
		return
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	username, err := gonanoid.New(10)
	if err != nil {
		log.Fatalf("failed to generate username: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, username, password_hash, is_active, is_staff)
		VALUES (lower($1), $2, $3, true, true)
		ON CONFLICT (lower(email)) DO UPDATE SET is_staff = true
		RETURNING id
	`, email, username, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
		ON CONFLICT (user_id) DO UPDATE SET role = 'admin'
	`, id); err != nil {
		log.Fatalf("failed to assign admin role: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO common_profiles (user_id, full_name)
		VALUES ($1, split_part(lower($2), '@', 1))
		ON CONFLICT (user_id) DO NOTHING
	`, id, email); err != nil {
		log.Fatalf("failed to create admin profile: %v", err)
	}
	fmt.Printf("admin ensured: id=%s email=%s\n", id, email)
}

func seedReferences(db *sql.DB) {
	for _, name := range subjectTags {
		if _, err := db.Exec(`
			INSERT INTO subject_tags (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			log.Fatalf("failed to seed subject tag %q: %v", name, err)
		}
	}
	for _, tz := range timezones {
		if _, err := db.Exec(`
			INSERT INTO timezones (name, utc_offset) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET utc_offset = EXCLUDED.utc_offset
		`, tz[0], tz[1]); err != nil {
			log.Fatalf("failed to seed timezone %q: %v", tz[0], err)
		}
	}
	for _, lang := range languages {
		if _, err := db.Exec(`
			INSERT INTO languages (name, native_name) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET native_name = EXCLUDED.native_name
		`, lang[0], lang[1]); err != nil {
			log.Fatalf("failed to seed language %q: %v", lang[0], err)
		}
	}
	fmt.Printf("reference data ensured: %d tags, %d timezones, %d languages\n",
		len(subjectTags), len(timezones), len(languages))
}
