package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"SmartDesk/internal/classifier"
	"SmartDesk/internal/config"
	"SmartDesk/internal/logging"
	localnet "SmartDesk/internal/net"
	"SmartDesk/internal/normalize"
	"SmartDesk/internal/predict"
	"SmartDesk/internal/state"
	"SmartDesk/internal/ui"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	cfg := config.New()

	if err := logging.InitLogger(cfg.App.Mode); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	logging.Logger.Info("starting Smart Desk",
		zap.String("version", Version),
		zap.String("git_commit", GitCommit))

	if err := cfg.Validate(); err != nil {
		logging.Logger.Fatal("invalid configuration", zap.Error(err))
	}

	session := state.NewSession()
	canvas, err := state.NewCanvas(cfg.SurfaceSide(), cfg.Brush.DefaultSize, session)
	if err != nil {
		logging.Logger.Fatal("failed to create canvas", zap.Error(err))
	}

	normalizer, err := normalize.New(cfg.Normalizer.Resample)
	if err != nil {
		logging.Logger.Fatal("failed to create normalizer", zap.Error(err))
	}

	model, err := newClassifier(&cfg.Classifier)
	if err != nil {
		logging.Logger.Fatal("failed to create classifier", zap.Error(err))
	}

	var feed ui.Broadcaster
	if cfg.Feed.Enabled {
		server := localnet.NewServer()
		if err := server.Start(cfg.Feed.Port, cfg.Feed.MDNS, session.ID()); err != nil {
			logging.Logger.Warn("prediction feed disabled", zap.Error(err))
		} else {
			defer server.Close()
			feed = server.Hub
		}
	}

	ctrl := ui.NewController(canvas, predict.New(normalizer, model), feed)
	ui.NewApp(app.New(), cfg, ctrl).ShowAndRun()
	logging.Logger.Info("window closed", zap.String("session", session.ID()))
}

func newClassifier(cfg *config.ClassifierConfig) (classifier.Classifier, error) {
	switch cfg.Backend {
	case "linear":
		m, err := classifier.LoadLinearModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		logging.Logger.Info("using linear model", zap.String("path", cfg.ModelPath))
		return m, nil
	default:
		c, err := classifier.NewClient(cfg.URL, cfg.Timeout, nil)
		if err != nil {
			return nil, err
		}
		logging.Logger.Info("using model server", zap.String("url", cfg.URL))
		return c, nil
	}
}
