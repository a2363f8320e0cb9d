// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/filespad/pkg/configs"
	"github.com/yeisme/filespad/pkg/context"
	"github.com/yeisme/filespad/pkg/crypto"
	"github.com/yeisme/filespad/pkg/internal/jobs"
	"github.com/yeisme/filespad/pkg/internal/router"
	"github.com/yeisme/filespad/pkg/internal/storage"
	"github.com/yeisme/filespad/pkg/log"
	"github.com/yeisme/filespad/pkg/metrics"
	"github.com/yeisme/filespad/pkg/middleware"
	"github.com/yeisme/filespad/pkg/scheduler"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
	sched  *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	log.Init()

	engine := gin.New()
	engine.MaxMultipartMemory = config.Files.MaxUploadSize

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	// 密钥材料在进程启动时派生一次，之后注入到每个请求的 context
	cipher, err := crypto.New(config.Security.Secret)
	if err != nil {
		fmt.Printf("Error initializing crypto: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.GinLoggerMiddleware(),
		middleware.RateLimitMiddleware(config.Rate),
		middleware.CircuitBreakerMiddleware(config.Breaker),
		middleware.PrometheusMiddleware(),
		injectDependencies(manager, cipher),
	)

	router.RegisterAPIRoutes(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	// 过期清理任务独立于请求流运行
	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager, cipher); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	return &App{
		Engine: engine,
		config: config,
		sched:  sched,
	}
}

// injectDependencies 把存储管理器与加密组件放进每个请求的 context.
func injectDependencies(mgr *storage.Manager, cipher *crypto.Cipher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), mgr)
		ctx = context.WithCipher(ctx, cipher)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (a *App) Run() error {
	defer func() { _ = a.sched.Stop() }()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
