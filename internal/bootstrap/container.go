package bootstrap

import (
	"context"
	"log"

	"ai-coderagent-be/internal/config"
	"ai-coderagent-be/internal/controller"
	"ai-coderagent-be/internal/pkg/logger"
	"ai-coderagent-be/internal/repository/memory"
	"ai-coderagent-be/internal/repository/unitofwork"
	"ai-coderagent-be/internal/service"
	"ai-coderagent-be/pkg/coder"
	"ai-coderagent-be/pkg/coder/exemplar"
	"ai-coderagent-be/pkg/coder/tribal"
	"ai-coderagent-be/pkg/deepsearch"
	"ai-coderagent-be/pkg/knowbase"
	"ai-coderagent-be/pkg/llm/factory"

	pktNats "ai-coderagent-be/pkg/nats"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CoderController controller.ICoderController

	Logger logger.ILogger
}

// NewContainer wires the pipeline for the configured deployment mode. The db
// handle is nil in local mode.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// LLM provider shared by planner, searcher, generator and validator.
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	tribalLoader := tribal.NewLoader(cfg.Knowledge.TribalKBDir, sysLogger)
	searcher := deepsearch.NewLLMSearcher(llmProvider)

	pipeline := service.CoderPipeline{
		Planner:   coder.NewPlanner(llmProvider, sysLogger),
		Finder:    exemplar.NewFinder(searcher, sysLogger),
		Generator: coder.NewGenerator(llmProvider, sysLogger),
		Validator: coder.NewValidator(llmProvider, sysLogger),
	}

	// NATS lifecycle events, optional in both modes.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	remoteEnabled := cfg.Knowledge.Mode == "remote" || cfg.Knowledge.Mode == "both"
	localEnabled := cfg.Knowledge.Mode == "local" || cfg.Knowledge.Mode == "both"

	var (
		uowFactory   unitofwork.RepositoryFactory
		remoteLoader *coder.ContextLoader
		dbMemory     service.IMemoryService
	)
	if remoteEnabled {
		if db == nil {
			log.Fatalf("[FATAL] Remote mode requires a database connection")
		}
		uowFactory = unitofwork.NewRepositoryFactory(db)
		dbMemory = service.NewDbMemoryService(uowFactory)

		var rdb *redis.Client
		if cfg.Knowledge.KBCacheRedis {
			opt, err := redis.ParseURL(cfg.App.RedisURL)
			if err != nil {
				log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
				opt = &redis.Options{Addr: cfg.App.RedisURL}
			}
			rdb = redis.NewClient(opt)
			if _, err := rdb.Ping(context.Background()).Result(); err != nil {
				log.Printf("[WARN] Failed to connect to Redis: %v", err)
			}
		}

		gcsClient, err := storage.NewClient(context.Background())
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize object storage client: %v", err)
		}
		kbSource := knowbase.NewObjectStoreSource(gcsClient, cfg.Knowledge.KBBucket, rdb)
		remoteLoader = coder.NewContextLoader(kbSource, tribalLoader, dbMemory, sysLogger)
	}

	var (
		localLoader *coder.ContextLoader
		localMemory service.IMemoryService
	)
	if localEnabled {
		localMemory = service.NewLocalMemoryService(memory.NewConversationRepository())
		kbSource := knowbase.NewFilesystemSource(cfg.Knowledge.ProjectsDir)
		localLoader = coder.NewContextLoader(kbSource, tribalLoader, localMemory, sysLogger)
	}

	coderService := service.NewCoderService(
		pipeline,
		uowFactory,
		remoteLoader,
		dbMemory,
		localLoader,
		localMemory,
		natsPub,
		sysLogger,
	)

	return &Container{
		CoderController: controller.NewCoderController(coderService, !remoteEnabled),
		Logger:          sysLogger,
	}
}
