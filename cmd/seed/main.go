package main

import (
	"context"
	"log"
	"os"

	"bookshop/internal/config"
	"bookshop/internal/db"
	"bookshop/internal/migrate"
	bookrepo "bookshop/internal/repository/book"
	userrepo "bookshop/internal/repository/user"
	"bookshop/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	books := bookrepo.NewPostgres(pool, logger)
	users := userrepo.NewPostgres(pool, logger)

	if err := seed.Apply(ctx, books, users, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
