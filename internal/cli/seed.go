package cli

import (
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"study-quiz-service/internal/catalog"
	"study-quiz-service/internal/config"
	pgloader "study-quiz-service/internal/infra/postgres"
	redisstore "study-quiz-service/internal/infra/redis"
	"study-quiz-service/internal/logger"
)

// NewSeedCmd loads quiz content into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Validate and upsert quizzes into Postgres (built-in samples when --file is omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Mode)
			if err != nil {
				return err
			}
			defer log.Sync()

			quizzes := catalog.Sample()
			if file != "" {
				if quizzes, err = catalog.LoadFile(file); err != nil {
					return err
				}
			}

			if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
				return err
			}
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			loader := pgloader.NewQuizLoader(pool)

			// Drop cached copies so running servers pick up the new content.
			var cache *redisstore.QuizRepository
			if cfg.Redis.Addr != "" {
				client := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer client.Close()
				cache = redisstore.NewQuizRepository(client, loader, 0)
			}

			for id, quiz := range quizzes {
				if err := loader.SaveQuiz(ctx, quiz); err != nil {
					return err
				}
				if cache != nil {
					if err := cache.Invalidate(ctx, id); err != nil {
						log.Warn("quiz cache invalidation failed", "quizId", id, "error", err)
					}
				}
				log.Info("quiz seeded", "quizId", id, "questions", len(quiz.Questions)+len(quiz.QuestionPool))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to load")
	return cmd
}
