// Command seed loads the starter exercise library, or removes exercises by
// name with -delete.
package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/guraspy/personalized-workout-api/config"
	"github.com/guraspy/personalized-workout-api/logger"
	"github.com/guraspy/personalized-workout-api/services"

	"go.uber.org/zap"
)

func main() {
	del := flag.String("delete", "", "comma-separated exercise names to delete instead of seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init("development")
		logger.Fatal("loading config", zap.Error(err))
	}
	if err := logger.Init(cfg.Env); err != nil {
		logger.Fatal("initializing logger", zap.Error(err))
	}
	defer logger.Sync()

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal("migrating database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	svc := services.NewExerciseService(db)

	if *del != "" {
		for _, name := range strings.Split(*del, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if err := svc.DeleteByName(ctx, name); err != nil {
				logger.Warn("exercise not deleted", zap.String("name", name), zap.Error(err))
				continue
			}
			logger.Info("exercise deleted", zap.String("name", name))
		}
		return
	}

	logger.Info("seeding exercises")
	res, err := svc.Seed(ctx, services.DefaultExercises())
	if err != nil {
		logger.Fatal("seeding exercises", zap.Error(err))
	}
	for _, name := range res.Existing {
		logger.Warn("exercise already exists", zap.String("name", name))
	}
	logger.Info("finished seeding exercises", zap.Int("created", len(res.Created)), zap.Int("existing", len(res.Existing)))
}
