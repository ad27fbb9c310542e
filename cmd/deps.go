package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/ai/gemini"
	"github.com/jobscout/jobscout/internal/ai/ollama"
	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/pipeline"
	"github.com/jobscout/jobscout/internal/scoring"
	"github.com/jobscout/jobscout/internal/secrets"
	"github.com/jobscout/jobscout/internal/store"
)

// aiProvider bundles the two capabilities the pipeline needs from a vendor.
type aiProvider interface {
	ai.Completer
	ai.Embedder
}

func newAIProvider(ctx context.Context, cfg *AIConfig, log *zap.Logger) (aiProvider, error) {
	provider := "gemini"
	if cfg != nil && strings.TrimSpace(cfg.Provider) != "" {
		provider = strings.TrimSpace(strings.ToLower(cfg.Provider))
	}

	switch provider {
	case "gemini":
		if cfg == nil || cfg.Gemini == nil {
			return nil, fmt.Errorf("gemini configuration is required under ai.gemini")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		client, err := gemini.New(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.EmbeddingModel)
		if err != nil {
			return nil, err
		}

		logger.WithProvider(log, provider, client.Model()).Info("ai provider configured")

		return client, nil

	case "ollama":
		if cfg == nil || cfg.Ollama == nil {
			return nil, fmt.Errorf("ollama configuration is required under ai.ollama")
		}

		client, err := ollama.New(cfg.Ollama.URL, cfg.Ollama.Model)
		if err != nil {
			return nil, err
		}

		logger.WithProvider(log, provider, client.Model()).Info("ai provider configured")

		return client, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}
}

func newJobsClient(config *Config, log *zap.Logger) (*jobs.Client, error) {
	token := ""
	if config.Provider != nil && config.Provider.TokenFile != "" {
		loaded, err := secrets.Load(secrets.Source{
			Name: "job board token",
			File: config.Provider.TokenFile,
		})
		if err != nil {
			return nil, err
		}
		token = loaded
	}

	client := jobs.New(log, token)
	if config.Provider != nil {
		if config.Provider.BaseURL != "" {
			client.APIURL = config.Provider.BaseURL
		}
		if config.Provider.UserAgent != "" {
			client.UserAgent = config.Provider.UserAgent
		}
	}

	return client, nil
}

// newPipelineDeps assembles the collaborators for a pipeline run. The
// returned cleanup closes whatever was opened; callers must always call it.
func newPipelineDeps(ctx context.Context, config *Config, log *zap.Logger, requireStore bool) (pipeline.Deps, func(), error) {
	cleanup := func() {}

	provider, err := newAIProvider(ctx, config.AI, log)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	jobsClient, err := newJobsClient(config, log)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	deps := pipeline.Deps{
		Completer: provider,
		Scorer:    scoring.New(provider, log),
		Provider:  jobsClient,
		Logger:    log,
	}

	closers := make([]func(), 0, 2)
	cleanup = func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}

	databaseURL, err := resolveDatabaseURL(config)
	if err != nil {
		return deps, cleanup, err
	}

	if databaseURL == "" {
		if requireStore {
			return deps, cleanup, fmt.Errorf("database url is required (set database.url or DATABASE_URL)")
		}
		log.Info("no database configured; results will not be persisted")
	} else {
		st, err := store.New(ctx, databaseURL)
		if err != nil {
			return deps, cleanup, err
		}
		closers = append(closers, st.Close)

		if err := st.Bootstrap(ctx); err != nil {
			return deps, cleanup, err
		}

		deps.Store = st
	}

	if config.Redis != nil && config.Redis.URL != "" {
		ttl := time.Duration(config.Redis.CacheTTLMinutes) * time.Minute
		cache, err := store.NewCache(ctx, config.Redis.URL, ttl, log)
		if err != nil {
			return deps, cleanup, err
		}
		closers = append(closers, func() { _ = cache.Close() })

		deps.Cache = cache
	}

	return deps, cleanup, nil
}

func resolveDatabaseURL(config *Config) (string, error) {
	if config.Database == nil {
		return "", nil
	}

	if config.Database.URLFile != "" {
		return secrets.Load(secrets.Source{
			Name: "database url",
			File: config.Database.URLFile,
		})
	}

	return strings.TrimSpace(config.Database.URL), nil
}
