// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/modelgrid/modelgrid/internal/catalog"
	"github.com/modelgrid/modelgrid/internal/config"
	"github.com/modelgrid/modelgrid/internal/interactions"
	"github.com/modelgrid/modelgrid/internal/recommend"
)

// initEngine builds the recommendation engine from app config,
// optionally seeding the catalog from a JSON snapshot file. Without a
// seed the catalog starts empty and waits for the first UpdateModels.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(cfg *config.Config, store *interactions.Store, logger zerolog.Logger) (*recommend.Engine, error) {
	models, err := loadCatalogSeed(cfg.Catalog.SeedPath)
	if err != nil {
		return nil, err
	}
	if len(models) > 0 {
		logger.Info().Int("models", len(models)).
			Str("path", cfg.Catalog.SeedPath).
			Msg("catalog seeded from file")
	}

	return recommend.NewEngine(models, buildEngineConfig(cfg), store, logger)
}

// buildEngineConfig maps app config onto the engine's config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	engineCfg := recommend.DefaultConfig()
	engineCfg.Weights = recommend.Weights{
		Category:  cfg.Recommend.CategoryWeight,
		Tags:      cfg.Recommend.TagsWeight,
		Framework: cfg.Recommend.FrameworkWeight,
		ModelSize: cfg.Recommend.ModelSizeWeight,
	}
	engineCfg.TrendingWindow = cfg.Recommend.TrendingWindow
	engineCfg.TrendingThreshold = cfg.Recommend.TrendingThreshold
	engineCfg.SessionWindow = cfg.Recommend.SessionWindow
	engineCfg.CacheTTL = cfg.Recommend.CacheTTL
	engineCfg.CacheMaxEntries = cfg.Recommend.CacheMaxEntries
	engineCfg.DiversityFactor = cfg.Recommend.DiversityFactor
	engineCfg.DefaultLimit = cfg.Recommend.DefaultLimit

	algorithms := make([]recommend.Algorithm, 0, len(cfg.Recommend.Algorithms))
	for _, a := range cfg.Recommend.Algorithms {
		algorithms = append(algorithms, recommend.Algorithm(a))
	}
	engineCfg.Algorithms = algorithms

	return engineCfg
}

// loadCatalogSeed reads a JSON array of models. An empty path is fine;
// a named-but-broken file is a startup error.
func loadCatalogSeed(path string) ([]catalog.Model, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed %s: %w", path, err)
	}
	var models []catalog.Model
	if err := json.Unmarshal(raw, &models); err != nil {
		return nil, fmt.Errorf("parse catalog seed %s: %w", path, err)
	}
	return models, nil
}
