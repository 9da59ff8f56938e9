package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mpalani/payflow/internal/api"
	"github.com/mpalani/payflow/internal/config"
	"github.com/mpalani/payflow/internal/engine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.Production() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	handler := api.NewHandler(engine.New(), logger)
	router := api.NewRouter(handler)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
