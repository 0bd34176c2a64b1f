package bootstrap

import (
	"log"
	"time"

	"doc-qna-be/internal/config"
	"doc-qna-be/internal/controller"
	"doc-qna-be/internal/pkg/logger"
	"doc-qna-be/internal/repository/memory"
	"doc-qna-be/internal/service"
	"doc-qna-be/internal/websocket"
	"doc-qna-be/pkg/extract"
	"doc-qna-be/pkg/extract/remote"
	"doc-qna-be/pkg/extract/script"
	"doc-qna-be/pkg/llm/factory"
	"doc-qna-be/pkg/qa"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Collaborators
	// Initialize Extractor based on Config
	var extractor extract.Extractor
	timeout := time.Duration(cfg.Extractor.TimeoutSeconds) * time.Second
	if cfg.Extractor.Mode == "remote" {
		extractor = remote.NewRemoteExtractor(cfg.Extractor.ServiceURL, timeout)
		log.Printf("[INFO] Using Extractor: REMOTE (%s)", cfg.Extractor.ServiceURL)
	} else {
		extractor = script.NewRunner(cfg.Extractor.PythonBin, cfg.Extractor.ScriptPath, cfg.Extractor.TempDir, timeout)
		log.Printf("[INFO] Using Extractor: SCRIPT (%s)", cfg.Extractor.ScriptPath)
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OpenAIBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	protocol := qa.NewProtocol(llmProvider)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL)

	// 4. WebSocket Hub
	hub := websocket.NewHub(sysLogger)

	// 5. Services
	documentService := service.NewDocumentService(sessionRepo, extractor, pubSub, cfg.Session.EventTopic, sysLogger)
	chatService := service.NewChatService(protocol, sessionRepo, pubSub, cfg.Session.EventTopic, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Session.EventTopic, hub, sysLogger)

	// 6. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		ConsumerService:    consumerService,
		WebSocketHub:       hub,
		Logger:             sysLogger,
	}
}
