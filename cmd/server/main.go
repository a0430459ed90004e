package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"txn-decision-engine/internal/api"
	"txn-decision-engine/internal/notify"
)

type config struct {
	Addr           string        `env:"ADDR" envDefault:":8090"`
	DataDir        string        `env:"DATA_DIR" envDefault:"data"`
	DBFile         string        `env:"DB_FILE" envDefault:"decisions.sqlite"`
	SnapshotFile   string        `env:"SNAPSHOT_FILE" envDefault:"neural_memory.json"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	SilentDB       bool          `env:"SILENT_DB" envDefault:"true"`
	MirrorURL      string        `env:"MIRROR_URL"`
	MirrorAPIKey   string        `env:"MIRROR_API_KEY"`
	MirrorTimeout  time.Duration `env:"MIRROR_TIMEOUT" envDefault:"2s"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logrus.Fatalf("parse environment: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logrus.Fatalf("create data directory: %v", err)
	}

	server, err := api.NewServer(api.Config{
		DBPath:         filepath.Join(cfg.DataDir, cfg.DBFile),
		SnapshotPath:   filepath.Join(cfg.DataDir, cfg.SnapshotFile),
		AllowedOrigins: cfg.AllowedOrigins,
		SilentDB:       cfg.SilentDB,
		Mirror: notify.Config{
			BaseURL: cfg.MirrorURL,
			APIKey:  cfg.MirrorAPIKey,
			Timeout: cfg.MirrorTimeout,
		},
	})
	if err != nil {
		logrus.Fatalf("initialize server: %v", err)
	}
	defer server.Close()

	logrus.WithField("addr", cfg.Addr).Info("decision engine listening")
	if err := server.Router().Run(cfg.Addr); err != nil {
		logrus.Fatalf("serve: %v", err)
	}
}
