package main

import (
	"database/sql"
	"log"
	"os"
	"recruitflow/app/config"
	"recruitflow/app/database"
	"recruitflow/app/models"
	"recruitflow/app/routes/questionnaires"
	"recruitflow/app/routes/scoring"

	"github.com/joho/godotenv"
)

// Seeds an admin account, the default scoring weights and a starter
// questionnaire so a fresh install is usable immediately.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	email := getEnv("SEED_ADMIN_EMAIL", "admin@recruitflow.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "changeme")

	user, err := database.CreateUser(db, email, password, "Admin", "User", "admin")
	if err != nil {
		log.Printf("Skipping admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", user.Email)
	}

	weights, err := scoring.GetWeights(db)
	if err != nil {
		log.Fatal("Failed to load scoring weights:", err)
	}
	log.Printf("Active scoring weights total: %d", weights.Total())

	seedQuestionnaire(db)
}

func seedQuestionnaire(db *sql.DB) {
	existing, err := questionnaires.GetTemplatesForPosition(db, "electrician", false)
	if err != nil {
		log.Fatal("Failed to check templates:", err)
	}
	if len(existing) > 0 {
		log.Println("Starter questionnaire already present, skipping")
		return
	}

	template := &models.QuestionnaireTemplate{
		PositionKey: "electrician",
		Title:       "Electrical Safety Basics",
		Description: "First screening step for electrician applicants",
		StepNumber:  1,
		IsActive:    true,
	}
	if err := questionnaires.CreateTemplate(db, template); err != nil {
		log.Fatal("Failed to create template:", err)
	}

	question := &models.Question{
		TemplateID:  template.ID,
		Text:        "Which of these are required before working on a live panel?",
		Type:        models.MultiSelect,
		ScoringMode: models.Partial,
		Points:      10,
		SortOrder:   1,
	}
	if err := questionnaires.CreateQuestion(db, question); err != nil {
		log.Fatal("Failed to create question:", err)
	}

	// Partial scoring divides by the correct options' point total, so the
	// correct ones must carry non-zero points.
	options := []struct {
		text    string
		correct bool
		points  float64
	}{
		{"Lockout/tagout the supply", true, 4},
		{"Insulated gloves rated for the voltage", true, 3},
		{"A signed work permit", true, 3},
		{"A ladder", false, 0},
	}
	for i, o := range options {
		opt := &models.QuestionOption{
			QuestionID: question.ID,
			Text:       o.text,
			IsCorrect:  o.correct,
			Points:     o.points,
			SortOrder:  i + 1,
		}
		if err := questionnaires.CreateOption(db, opt); err != nil {
			log.Fatal("Failed to create option:", err)
		}
	}

	log.Printf("Starter questionnaire created for position %q", template.PositionKey)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
