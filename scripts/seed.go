package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/farishtaa/carefinder/internal/adapters/database"
	"github.com/farishtaa/carefinder/internal/adapters/search"
	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/postgres"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/typesense"
	"github.com/farishtaa/carefinder/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS doctors (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	photo_url  TEXT NOT NULL DEFAULT '',
	specialty  TEXT NOT NULL,
	experience INTEGER NOT NULL DEFAULT 0,
	degree     TEXT NOT NULL DEFAULT '',
	languages  TEXT[] NOT NULL DEFAULT '{}',
	address    TEXT NOT NULL DEFAULT '',
	about      TEXT NOT NULL DEFAULT '',
	latitude   DOUBLE PRECISION NOT NULL,
	longitude  DOUBLE PRECISION NOT NULL,
	review_ids TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS hospitals (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL DEFAULT 'doctor',
	specialties TEXT[] NOT NULL DEFAULT '{}',
	street      TEXT NOT NULL DEFAULT '',
	district    TEXT NOT NULL DEFAULT '',
	state       TEXT NOT NULL DEFAULT '',
	postcode    TEXT NOT NULL DEFAULT '',
	about       TEXT NOT NULL DEFAULT '',
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL,
	review_ids  TEXT[] NOT NULL DEFAULT '{}',
	UNIQUE (name, longitude, latitude)
);

CREATE TABLE IF NOT EXISTS users (
	id                TEXT PRIMARY KEY,
	first_name        TEXT NOT NULL,
	last_name         TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL UNIQUE,
	password          TEXT NOT NULL,
	user_type         TEXT NOT NULL,
	age               INTEGER NOT NULL DEFAULT 0,
	gender            TEXT NOT NULL DEFAULT '',
	specialty         TEXT NOT NULL DEFAULT '',
	experience        INTEGER NOT NULL DEFAULT 0,
	degree            TEXT NOT NULL DEFAULT '',
	languages         TEXT[] NOT NULL DEFAULT '{}',
	about             TEXT NOT NULL DEFAULT '',
	address           TEXT NOT NULL DEFAULT '',
	photo_url         TEXT NOT NULL DEFAULT '',
	latitude          DOUBLE PRECISION,
	longitude         DOUBLE PRECISION,
	doctor_review_ids TEXT[] NOT NULL DEFAULT '{}',
	profile_completed BOOLEAN NOT NULL DEFAULT FALSE,
	hospital_name     TEXT NOT NULL DEFAULT '',
	hospital_address  TEXT NOT NULL DEFAULT '',
	hospital_phone    TEXT NOT NULL DEFAULT '',
	hospital_about    TEXT NOT NULL DEFAULT '',
	doctor_ids        TEXT[] NOT NULL DEFAULT '{}',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS reviews (
	id             TEXT PRIMARY KEY,
	target_id      TEXT NOT NULL,
	target_variant TEXT NOT NULL,
	reviewer_id    TEXT NOT NULL,
	rating         INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	text           TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS reviews_target_idx ON reviews (target_id);

CREATE TABLE IF NOT EXISTS triage_sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	title      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS triage_sessions_user_idx ON triage_sessions (user_id);

CREATE TABLE IF NOT EXISTS triage_messages (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES triage_sessions (id),
	user_id    TEXT NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS triage_messages_session_idx ON triage_messages (session_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			DROP TABLE IF EXISTS
				triage_messages,
				triage_sessions,
				reviews,
				users,
				hospitals,
				doctors
			CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ensured")

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(ctx); err != nil {
			log.Printf("Failed to init suggestion index schema: %v", err)
		}
	}

	doctorRepo := database.NewDoctorAdapter(pgClient)

	doctors := []*entities.Doctor{
		{
			ID: uuid.New().String(), Name: "Dr. Asha Verma", Specialty: "cardiologist",
			Experience: 14, Degree: "MD, DM Cardiology", Languages: []string{"English", "Hindi"},
			Address: "12 Lake Road, Bhopal", About: "Interventional cardiologist focused on preventive care.",
			Location: entities.Location{Latitude: 23.2599, Longitude: 77.4126},
		},
		{
			ID: uuid.New().String(), Name: "Dr. Rohan Mehta", Specialty: "dermatologist",
			Experience: 9, Degree: "MD Dermatology", Languages: []string{"English", "Hindi"},
			Address: "4 MG Road, Bhopal", About: "Treats chronic skin conditions and allergies.",
			Location: entities.Location{Latitude: 23.2421, Longitude: 77.4289},
		},
		{
			ID: uuid.New().String(), Name: "Dr. Sara Khan", Specialty: "pediatrician",
			Experience: 11, Degree: "MD Pediatrics", Languages: []string{"English", "Urdu", "Hindi"},
			Address: "88 Hamidia Road, Bhopal", About: "Newborn and child specialist.",
			Location: entities.Location{Latitude: 23.2685, Longitude: 77.4012},
		},
		{
			ID: uuid.New().String(), Name: "Dr. Vikram Nair", Specialty: "orthopedic",
			Experience: 17, Degree: "MS Orthopedics", Languages: []string{"English", "Malayalam", "Hindi"},
			Address: "23 Arera Colony, Bhopal", About: "Joint replacement and sports injury surgeon.",
			Location: entities.Location{Latitude: 23.2156, Longitude: 77.4402},
		},
		{
			ID: uuid.New().String(), Name: "Dr. Meera Joshi", Specialty: "general_physician",
			Experience: 7, Degree: "MBBS, MD", Languages: []string{"English", "Hindi", "Marathi"},
			Address: "56 New Market, Bhopal", About: "Family medicine and chronic disease management.",
			Location: entities.Location{Latitude: 23.2332, Longitude: 77.4018},
		},
	}

	for _, d := range doctors {
		if err := doctorRepo.Create(ctx, d); err != nil {
			log.Printf("Failed to create doctor %s: %v", d.Name, err)
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.Index(ctx, entities.PractitionerFromDoctor(d)); err != nil {
				log.Printf("Failed to index doctor %s: %v", d.Name, err)
			}
		}
	}

	log.Printf("Seeded %d curated doctors at %s", len(doctors), time.Now().Format(time.RFC3339))
}
