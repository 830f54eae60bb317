// Command migrate applies or rolls back the profile schema.
package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/config"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the .sql migrations")
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, "talent-profile-migrate")
	defer appLogger.Sync()

	if err := run(cfg, appLogger, *dir, *down); err != nil {
		appLogger.Fatal("Migration failed", err, zap.String("dir", *dir), zap.Bool("down", *down))
	}
}

func run(cfg config.Config, log logger.Logger, dir string, down bool) error {
	if cfg.DB.DSN == "" {
		return errors.New("db.dsn (DB_DSN) is required")
	}

	m, err := migrate.New("file://"+dir, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}
	defer m.Close()

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, _ := m.Version()
	log.Info("Schema migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
