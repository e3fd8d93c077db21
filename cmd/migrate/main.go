package main

import (
	"flag"
	"log"

	"laundry-system/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Запуск миграций: go run ./cmd/migrate [-dir migrations] <up|down|status|...>
func main() {
	dir := flag.String("dir", "migrations", "каталог с миграциями")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("использование: migrate [-dir каталог] <команда goose>")
	}
	command := args[0]

	cfg := config.New()

	db, err := goose.OpenDBWithDriver("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с базой: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("не удалось закрыть соединение: %v", err)
		}
	}()

	if err := goose.RunWithOptions(command, db, *dir, args[1:]); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}
}
