package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_quizzes.sql
var createQuizzesSQL string

//go:embed 0002_create_quiz_attempts.sql
var createQuizAttemptsSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.Add(migrate.Migration{
		Name:    "20241122010000",
		Comment: "create_quizzes",
		Up:      execSQL(createQuizzesSQL),
		Down:    execSQL(`DROP TABLE IF EXISTS quizzes`),
	})
	Migrations.Add(migrate.Migration{
		Name:    "20241122020000",
		Comment: "create_quiz_attempts",
		Up:      execSQL(createQuizAttemptsSQL),
		Down:    execSQL(`DROP TABLE IF EXISTS quiz_attempts`),
	})
}

func execSQL(query string) migrate.MigrationFunc {
	return func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, query)
		return err
	}
}
