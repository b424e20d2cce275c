package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"newsroom-agents/internal/agent"
	"newsroom-agents/internal/config"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/adapter"
	aiAdapters "newsroom-agents/internal/infra/adapters/ai"
	"newsroom-agents/internal/infra/adapters/ingest"
	pg "newsroom-agents/internal/infra/db/postgres"
	opshttp "newsroom-agents/internal/infra/http"
	"newsroom-agents/internal/infra/logging"
	"newsroom-agents/internal/infra/metrics"
	red "newsroom-agents/internal/infra/redis"
	"newsroom-agents/internal/infra/sched"
	"newsroom-agents/internal/infra/worker"
	"newsroom-agents/internal/orchestrator"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "developer mode: console logs, verbose output")
	once := flag.Bool("once", false, "run a single cycle and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := pg.InitSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema init")
	}

	articleRepo := pg.NewArticleRepo(pool)
	taskRepo := pg.NewTaskRepo(pool)
	runRepo := pg.NewAgentRunRepo(pool)
	txm := pg.NewTxManager(pool)

	// ---- Redis report cache (optional) ----
	var sink orchestrator.ReportSink
	probes := map[string]opshttp.Pinger{"postgres": pool}
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		sink = red.NewReportCache(redisClient, cfg.Redis.TTL)
		probes["redis"] = redisClient
	} else {
		logger.Info().Msg("redis.url empty; report cache disabled")
	}

	// ---- AI provider (OpenAI -> Gemini -> local fallback) ----
	var live adapter.AIProvider
	switch {
	case cfg.AI.OpenAIKey != "":
		live, err = aiAdapters.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.Model, cfg.AI.MaxInputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai provider")
		}
		logger.Info().Str("model", cfg.AI.Model).Msg("AI provider: OpenAI")
	case cfg.AI.GeminiKey != "":
		live, err = aiAdapters.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini provider")
		}
		logger.Info().Str("model", cfg.AI.Model).Msg("AI provider: Gemini")
	default:
		logger.Warn().Msg("no AI credential configured; running on the local fallback")
	}
	if live != nil {
		live = aiAdapters.NewLimitedAI(live, cfg.AI.ConcurrentLimit)
	}
	ai := aiAdapters.NewDegradingProvider(live, aiAdapters.NewFallbackProvider(), logger)

	// ---- Agents ----
	fetcher := ingest.NewHTTPSource(cfg.Ingest.Timeout, cfg.Ingest.UserAgent, cfg.Ingest.MaxBodyBytes)
	agents := []agent.Agent{
		agent.NewNewsAgent(articleRepo, fetcher, logger),
		agent.NewReviewAgent(articleRepo, agent.Policy{
			MinContentLength: cfg.Review.MinContentLength,
			BannedTerms:      cfg.Review.BannedTerms,
		}, logger),
		agent.NewContentAgent(articleRepo, ai, cfg.AI.Timeout, logger),
	}

	// ---- Orchestrator ----
	pool2 := worker.NewPool(cfg.Orchestrator.StageWorkers)
	pool2.Start()
	defer pool2.Stop()

	orch := orchestrator.New(taskRepo, runRepo, txm, agents, pool2, sink, cfg.Orchestrator, logger)

	if *once {
		report, err := orch.RunOnce(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("cycle")
		}
		logger.Info().Str("outcome", string(report.Overall)).Msg("single cycle done")
		if report.Overall == model.OutcomeFailure {
			os.Exit(1)
		}
		return
	}

	// ---- Ops server ----
	ops := opshttp.NewServer(cfg.Ops.Port, orch, articleRepo, probes, logger)
	go func() {
		if err := ops.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("ops server")
		}
	}()

	go func() {
		if err := orch.RunForever(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("orchestrator stopped")
		}
	}()

	// ---- Stale-task janitor ----
	janitor := sched.NewReclaimWorker(cfg.Orchestrator.Interval, 2*cfg.Orchestrator.Interval, taskRepo, logger)
	go func() { _ = janitor.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = ops.Shutdown(context.Background())
}
