package bootstrap

import (
	"log"

	"medisos-be/internal/config"
	"medisos-be/internal/controller"
	"medisos-be/internal/pkg/logger"
	"medisos-be/internal/pkg/mailer"
	"medisos-be/internal/repository/memory"
	"medisos-be/internal/repository/redisstore"
	"medisos-be/internal/repository/unitofwork"
	"medisos-be/internal/service"
	"medisos-be/pkg/llm/factory"
	pktNats "medisos-be/pkg/nats"
	"medisos-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// reportTopic carries report-created messages from the report service to the
// email consumer.
const reportTopic = "report.created"

type Container struct {
	// Controllers
	PageController         controller.IPageController
	AuthController         controller.IAuthController
	ChatbotController      controller.IChatbotController
	AssessmentController   controller.IAssessmentController
	PsychologistController controller.IPsychologistController

	// Shared infrastructure used by the server middleware
	Logger       logger.ILogger
	SessionStore store.SessionStore
	UowFactory   unitofwork.RepositoryFactory

	// Background services (main.go starts these)
	ConsumerService service.IConsumerService

	natsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// Event bus for async report emails
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	sessionStore := newSessionStore(cfg.Session)

	// NATS audit bus is best-effort: a missing broker must not block startup.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
		natsPub = nil
	}

	// Services
	authService := service.NewAuthService(uowFactory, sessionStore, natsPub, cfg.App.JWTSecret)
	chatbotService := service.NewChatbotService(uowFactory, llmProvider, sysLogger, cfg.Ai.MaxTokens, cfg.Ai.Timeout)
	questionService := service.NewQuestionService(uowFactory)
	responseService := service.NewResponseService(uowFactory)
	publisherService := service.NewPublisherService(reportTopic, pubSub)
	reportService := service.NewReportService(uowFactory, llmProvider, publisherService, natsPub, sysLogger, cfg.Ai.Timeout)
	psychologistService := service.NewPsychologistService(uowFactory)
	consumerService := service.NewConsumerService(pubSub, reportTopic, uowFactory, emailService)

	return &Container{
		PageController:         controller.NewPageController(cfg.App.StaticDir),
		AuthController:         controller.NewAuthController(authService, cfg.Session.CookieName, cfg.Session.TTL),
		ChatbotController:      controller.NewChatbotController(chatbotService),
		AssessmentController:   controller.NewAssessmentController(responseService, questionService, reportService, chatbotService),
		PsychologistController: controller.NewPsychologistController(psychologistService),

		Logger:       sysLogger,
		SessionStore: sessionStore,
		UowFactory:   uowFactory,

		ConsumerService: consumerService,

		natsPublisher: natsPub,
	}
}

func newSessionStore(cfg config.SessionConfig) store.SessionStore {
	if cfg.Store == "redis" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] Invalid REDIS_URL: %v", err)
		}
		log.Printf("[INFO] Using redis session store")
		return redisstore.NewSessionRepository(redis.NewClient(opts), cfg.TTL)
	}
	log.Printf("[INFO] Using in-memory session store")
	return memory.NewSessionRepository(cfg.TTL)
}

// Shutdown releases long-lived connections.
func (c *Container) Shutdown() {
	if c.natsPublisher != nil {
		c.natsPublisher.Close()
	}
	_ = c.Logger.Sync()
}
