package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"swiftflow/internal/chain"
	"swiftflow/internal/fraud"
	fraudmetrics "swiftflow/internal/fraud/metrics"
	"swiftflow/internal/llm"
	llmcache "swiftflow/internal/llm/cache"
	"swiftflow/internal/ops"
	"swiftflow/internal/orchestrate"
	"swiftflow/internal/pipeline"
	"swiftflow/internal/platform/config"
	"swiftflow/internal/platform/httpserver"
	"swiftflow/internal/platform/logger"
	platformredis "swiftflow/internal/platform/redis"
	"swiftflow/internal/report"
	"swiftflow/internal/swift"
	"swiftflow/internal/validation"
	validationmetrics "swiftflow/internal/validation/metrics"
)

// main wires dependencies from config and runs one batch through the
// pipeline. Business logic lives in the internal packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	model := buildModel(cfg, redisClient, log)

	evaluator, corrector := buildOracles(model)
	loop := validation.NewLoop(evaluator, corrector,
		validation.WithMaxIterations(cfg.Pipeline.MaxIterations),
		validation.WithLogger(log),
		validation.WithMetrics(validationmetrics.New()),
	)

	scheduler := fraud.NewScheduler(
		fraud.DefaultAgents(),
		fraud.NewAggregator(cfg.Pipeline.FraudThreshold),
		fraud.WithWorkers(cfg.Pipeline.MaxWorkers),
		fraud.WithTaskTimeout(cfg.Pipeline.TaskTimeout),
		fraud.WithLogger(log),
		fraud.WithMetrics(fraudmetrics.New()),
	)

	generator := swift.NewGenerator(cfg.Pipeline.BankCount, cfg.Pipeline.Seed)
	reports := report.NewWriter(cfg.Pipeline.ReportDir, report.WithLogger(log))

	opts := []pipeline.Option{pipeline.WithLogger(log)}
	if model != nil {
		opts = append(opts,
			pipeline.WithAnalyzer(chain.NewAnalyzer(model, chain.WithLogger(log))),
			pipeline.WithOrchestrator(orchestrate.New(model, orchestrate.WithLogger(log))),
		)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := report.NewKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka connection failed")
		}
		defer producer.Close()
		opts = append(opts, pipeline.WithPublisher(
			report.NewVerdictPublisher(producer, cfg.Kafka.VerdictTopic, log)))
	}

	runner := pipeline.New(generator, loop, scheduler, reports, opts...)

	srv := startOpsServer(cfg, redisClient, log)

	log.Info().
		Int("messages", cfg.Pipeline.MessageCount).
		Bool("model", model != nil).
		Msg("starting pipeline run")

	if err := runner.Run(ctx, cfg.Pipeline.MessageCount); err != nil {
		log.Error().Err(err).Msg("pipeline run failed")
		shutdownOps(srv, log)
		os.Exit(1)
	}
	log.Info().Msg("pipeline run complete")

	shutdownOps(srv, log)
}

// buildModel returns nil when no API key is configured; the pipeline then
// runs fully offline on deterministic rules.
func buildModel(cfg *config.Config, redisClient *platformredis.Client, log zerolog.Logger) *llm.Client {
	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, running offline")
		return nil
	}

	var store llmcache.Cache = llmcache.NewMemory()
	if redisClient != nil {
		store = llmcache.NewRedis(redisClient.Client)
	}

	return llm.NewClient(cfg.OpenAI.APIKey,
		llm.WithModel(cfg.OpenAI.Model),
		llm.WithBaseURL(cfg.OpenAI.BaseURL),
		llm.WithCache(store),
		llm.WithLogger(log),
	)
}

// buildOracles pairs the LLM oracles with the model, or falls back to the
// deterministic rule evaluator and a no-op corrector.
func buildOracles(model *llm.Client) (validation.Evaluator, validation.Corrector) {
	if model == nil {
		return validation.NewRuleEvaluator(validation.DefaultStandards()), validation.NoopCorrector{}
	}
	return validation.NewLLMEvaluator(model), validation.NewLLMCorrector(model)
}

// startOpsServer exposes health and metrics when OPS_ADDR is set.
func startOpsServer(cfg *config.Config, redisClient *platformredis.Client, log zerolog.Logger) *http.Server {
	if cfg.Ops.Addr == "" {
		return nil
	}

	checkers := map[string]ops.HealthChecker{}
	if redisClient != nil {
		checkers["redis"] = redisClient
	}

	srv := httpserver.New(cfg.Ops.Addr, ops.NewRouter(checkers))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("ops server error")
		}
	}()
	log.Info().Str("addr", cfg.Ops.Addr).Msg("ops server listening")
	return srv
}

func shutdownOps(srv *http.Server, log zerolog.Logger) {
	if srv == nil {
		return
	}
	if err := httpserver.Shutdown(srv, 10*time.Second); err != nil {
		log.Error().Err(err).Msg("ops server shutdown failed")
	}
}
