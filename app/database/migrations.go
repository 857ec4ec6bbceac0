package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates or updates the schema. Every statement is idempotent
// so the app can run this on every start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name VARCHAR(200) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(30) NOT NULL DEFAULT '',
			position_applied VARCHAR(200) NOT NULL,
			years_of_experience INTEGER NOT NULL DEFAULT 0,
			worked_here_before VARCHAR(10) NOT NULL DEFAULT '',
			has_relatives_in_company VARCHAR(10) NOT NULL DEFAULT '',
			referred_by VARCHAR(200) NOT NULL DEFAULT '',
			highest_education VARCHAR(30) NOT NULL DEFAULT '',
			additional_courses TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '',
			certifications TEXT NOT NULL DEFAULT '',
			availability_start VARCHAR(20) NOT NULL DEFAULT '',
			has_own_transportation VARCHAR(10) NOT NULL DEFAULT '',
			travel_availability VARCHAR(20) NOT NULL DEFAULT '',
			height_work VARCHAR(10) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'incomplete',
			score DECIMAL(5,1) NOT NULL DEFAULT 0,
			score_breakdown JSON,
			score_updated_at TIMESTAMPTZ,
			access_code VARCHAR(8) UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_status ON candidates(status)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_position ON candidates(position_applied)`,
		`CREATE TABLE IF NOT EXISTS professional_experiences (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
			company VARCHAR(200) NOT NULL,
			position VARCHAR(200) NOT NULL DEFAULT '',
			start_date DATE,
			end_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_experiences_candidate ON professional_experiences(candidate_id)`,
		`CREATE TABLE IF NOT EXISTS interviews (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
			scheduled_at TIMESTAMPTZ NOT NULL,
			location VARCHAR(255) NOT NULL DEFAULT '',
			interviewer VARCHAR(200) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
			rating INTEGER CHECK (rating BETWEEN 1 AND 5),
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interviews_candidate_status ON interviews(candidate_id, status)`,
		`CREATE TABLE IF NOT EXISTS scoring_weights (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			years_of_experience INTEGER NOT NULL DEFAULT 27,
			idle_time INTEGER NOT NULL DEFAULT 5,
			worked_here_before INTEGER NOT NULL DEFAULT 0,
			has_relatives_in_company INTEGER NOT NULL DEFAULT 0,
			referred_by INTEGER NOT NULL DEFAULT 0,
			education_level INTEGER NOT NULL DEFAULT 16,
			courses INTEGER NOT NULL DEFAULT 0,
			skills INTEGER NOT NULL DEFAULT 2,
			certifications INTEGER NOT NULL DEFAULT 0,
			immediate_availability INTEGER NOT NULL DEFAULT 5,
			own_transportation INTEGER NOT NULL DEFAULT 5,
			travel_availability INTEGER NOT NULL DEFAULT 5,
			height_work INTEGER NOT NULL DEFAULT 5,
			average_rating INTEGER NOT NULL DEFAULT 30,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_by UUID REFERENCES users(id) ON DELETE SET NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_scoring_weights_active ON scoring_weights(is_active) WHERE is_active`,
		`CREATE TABLE IF NOT EXISTS questionnaire_templates (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			position_key VARCHAR(200) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			step_number INTEGER NOT NULL DEFAULT 1,
			version INTEGER NOT NULL DEFAULT 1,
			is_active BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_position_active ON questionnaire_templates(position_key, is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_position_step ON questionnaire_templates(position_key, step_number)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			template_id UUID NOT NULL REFERENCES questionnaire_templates(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'multi_select',
			scoring_mode VARCHAR(20) NOT NULL DEFAULT 'all_or_nothing',
			points DECIMAL(5,2) NOT NULL DEFAULT 1 CHECK (points >= 0),
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_template ON questions(template_id)`,
		`CREATE TABLE IF NOT EXISTS question_options (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			question_id UUID NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			text VARCHAR(500) NOT NULL,
			is_correct BOOLEAN NOT NULL DEFAULT false,
			points DECIMAL(7,2) NOT NULL DEFAULT 0 CHECK (points >= 0),
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_options_question ON question_options(question_id)`,
		`CREATE TABLE IF NOT EXISTS questionnaire_responses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
			template_id UUID NOT NULL REFERENCES questionnaire_templates(id),
			position_key VARCHAR(200) NOT NULL,
			score DECIMAL(7,2) NOT NULL DEFAULT 0,
			max_score DECIMAL(7,2) NOT NULL DEFAULT 0,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (candidate_id, template_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_position ON questionnaire_responses(position_key, submitted_at)`,
		`CREATE TABLE IF NOT EXISTS selected_options (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			response_id UUID NOT NULL REFERENCES questionnaire_responses(id) ON DELETE CASCADE,
			question_id UUID NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			option_id UUID NOT NULL REFERENCES question_options(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (response_id, question_id, option_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_selected_response_question ON selected_options(response_id, question_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
