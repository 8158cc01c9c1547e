package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"

	"costbot/pkg/api/analysis"
	apichat "costbot/pkg/api/chat"
	apiconfig "costbot/pkg/api/config"
	"costbot/pkg/core/config"
	"costbot/pkg/core/predict"
)

func main() {
	configPath := flag.String("config", "config/costbot.yaml", "configuration file path")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	predictor, err := predict.New(cfg.Predictor.Kind, cfg.Predictor.Window)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build predictor")
	}

	analysisHandler := analysis.NewHandler(predictor, cfg.TopN)
	http.HandleFunc("/api/analysis", analysisHandler.HandleAnalysis)

	chatHandler := apichat.NewHandler()
	http.HandleFunc("/api/chat", chatHandler.HandleQuestion)

	configHandler := apiconfig.NewHandler(predictor, cfg.TopN)
	http.HandleFunc("/api/config", configHandler.HandleConfig)

	log.Info().
		Int("port", cfg.Server.Port).
		Str("predictor", predictor.Name()).
		Msg("API server starting")
	fmt.Println("  - POST /api/analysis")
	fmt.Println("  - POST /api/chat")
	fmt.Println("  - GET  /api/config")

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("server failed to start")
		os.Exit(1)
	}
}
