// Command meetscribed serves the meeting transcription API: it downloads a
// caller-supplied audio URL, transcribes it, and optionally attributes the
// transcript to named participants and summarizes the meeting.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/meetscribe/internal/audio"
	"github.com/skillsenselab/meetscribe/internal/config"
	"github.com/skillsenselab/meetscribe/internal/llm"
	llmopenai "github.com/skillsenselab/meetscribe/internal/llm/openai"
	"github.com/skillsenselab/meetscribe/internal/logger"
	"github.com/skillsenselab/meetscribe/internal/meeting"
	"github.com/skillsenselab/meetscribe/internal/observability"
	"github.com/skillsenselab/meetscribe/internal/server"
	"github.com/skillsenselab/meetscribe/internal/server/endpoint"
	"github.com/skillsenselab/meetscribe/internal/stt"
	sttopenai "github.com/skillsenselab/meetscribe/internal/stt/openai"
	"github.com/skillsenselab/meetscribe/internal/version"
)

const serviceName = "meetscribe"

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", logger.ErrorFields("config.load", err))
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting meetscribed", map[string]interface{}{
		"version": version.GetVersionInfo().Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability)
		if err != nil {
			log.Fatal("Failed to initialize tracer", logger.ErrorFields("tracer.init", err))
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()

		mp, err := observability.InitMeter(ctx, cfg.Observability)
		if err != nil {
			log.Fatal("Failed to initialize meter", logger.ErrorFields("meter.init", err))
		}
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err = observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			log.Fatal("Failed to create metrics", logger.ErrorFields("metrics.init", err))
		}
	}

	sttRegistry := stt.NewRegistry()
	sttRegistry.Register(sttopenai.NewProvider(cfg.Transcriber.OpenAI))
	sttProvider, err := sttRegistry.Get(cfg.Transcriber.Provider)
	if err != nil {
		log.Fatal("Unknown transcription provider", logger.ErrorFields("stt.select", err))
	}

	llmRegistry := llm.NewRegistry()
	llmRegistry.Register(llmopenai.NewProvider(cfg.Chat.OpenAI))
	llmProvider, err := llmRegistry.Get(cfg.Chat.Provider)
	if err != nil {
		log.Fatal("Unknown chat provider", logger.ErrorFields("llm.select", err))
	}

	resolver := audio.NewResolver(cfg.Audio, log)
	analyzer := meeting.NewAnalyzer(llmProvider, log)
	svc := meeting.NewService(resolver, sttProvider, analyzer, log)
	handler := meeting.NewHandler(svc, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware(metrics)

	engine := srv.GinEngine()
	engine.GET("/health", endpoint.Health(serviceName, sttProvider, llmProvider))
	engine.GET("/version", endpoint.Version())
	handler.Register(engine)

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", logger.ErrorFields("server.start", err))
	}

	<-ctx.Done()
	if err := srv.Stop(context.Background()); err != nil {
		log.Error("Shutdown error", logger.ErrorFields("server.stop", err))
	}
}
