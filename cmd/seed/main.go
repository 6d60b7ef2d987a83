package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"papertrail/internal/config"
	"papertrail/internal/domain/models"
	"papertrail/internal/repository/postgres"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed documents")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+tables.Documents+" CASCADE"); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)

	log.Println("Seeding sample documents...")
	userID := getEnv("SEED_USER_ID", "00000000-0000-0000-0000-000000000001")
	for _, doc := range sampleDocuments(userID) {
		if err := docRepo.Create(ctx, &doc); err != nil {
			log.Fatalf("Failed to seed document %s: %v", doc.Filename, err)
		}
	}
	log.Println("Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			filename TEXT NOT NULL,
			folder_path TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			storage_key TEXT NOT NULL,
			download_url TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			event JSONB NOT NULL DEFAULT '{"found":false,"events":[]}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	createIndex := `
		CREATE INDEX IF NOT EXISTS idx_` + tables.Documents + `_user_created
		ON ` + tables.Documents + ` (user_id, created_at DESC)
	`
	if _, err := pool.Exec(ctx, createIndex); err != nil {
		return err
	}

	return nil
}

func sampleDocuments(userID string) []models.Document {
	now := time.Now().UTC()
	return []models.Document{
		{
			ID:         uuid.New().String(),
			UserID:     userID,
			Filename:   "Electric Utility Bill March.png",
			FolderPath: "Bills / Utilities",
			Tags:       []string{"Bills", "Utilities"},
			StorageKey: "documents/" + userID + "/seed-electric-bill.png",
			Metadata: models.DocumentMeta{
				Sender:   "City Power & Light",
				Date:     "2026-03-02",
				Category: "Utilities",
				Summary:  "March electricity bill, due at the end of the month.",
			},
			Event:     models.EventBlock{Events: []models.CalendarEvent{}},
			CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:         uuid.New().String(),
			UserID:     userID,
			Filename:   "School Science Fair Notice.png",
			FolderPath: "School / Events",
			Tags:       []string{"School", "Events"},
			StorageKey: "documents/" + userID + "/seed-science-fair.png",
			Metadata: models.DocumentMeta{
				Sender:   "Lincoln Elementary",
				Category: "School",
				Summary:  "Invitation to the annual science fair.",
			},
			Event: models.EventBlock{
				Found: true,
				Events: []models.CalendarEvent{
					{
						Title:       "Science Fair",
						StartDate:   now.AddDate(0, 0, 14).Format("2006-01-02"),
						Description: "Annual science fair in the school gym.",
					},
				},
			},
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:         uuid.New().String(),
			UserID:     userID,
			Filename:   "Dentist Appointment Reminder.pdf",
			FolderPath: "",
			Tags:       []string{models.UncategorizedFolder},
			StorageKey: "documents/" + userID + "/seed-dentist-reminder.pdf",
			Metadata: models.DocumentMeta{
				Summary: "Reminder for an upcoming dental checkup.",
			},
			Event:     models.EventBlock{Events: []models.CalendarEvent{}},
			CreatedAt: now,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
