package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/open-agent-labs/skills-catalog/internal/catalog"
	"github.com/open-agent-labs/skills-catalog/internal/config"
	"github.com/open-agent-labs/skills-catalog/internal/db"
	"github.com/open-agent-labs/skills-catalog/internal/github"
	"github.com/open-agent-labs/skills-catalog/internal/goroutine"
	httpHandlers "github.com/open-agent-labs/skills-catalog/internal/http/handlers"
	httpRouter "github.com/open-agent-labs/skills-catalog/internal/http/router"
	"github.com/open-agent-labs/skills-catalog/internal/logger"
	"github.com/open-agent-labs/skills-catalog/internal/repository"
	"github.com/open-agent-labs/skills-catalog/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}
	appLog := logger.Component("main")

	// Вшитый каталог нужен всегда: он обслуживает чтение, когда хранилища нет.
	fallback, err := catalog.EmbeddedSource()
	if err != nil {
		appLog.WithError(err).Fatal("Не удалось загрузить вшитый каталог")
	}

	// Хранилище опционально. Без него сервис работает только на чтение.
	var (
		store     catalog.Source
		skillRepo service.SkillStore
	)
	dbConn := openStore(ctx, cfg)
	if dbConn != nil {
		defer safeClose(dbConn)
		repo := repository.NewSkillRepository(dbConn)
		store, skillRepo = repo, repo
	}

	githubClient, err := github.NewClient(ctx, github.Options{
		Token:   cfg.GitHubToken,
		APIURL:  cfg.GitHubAPIURL,
		RawURL:  cfg.GitHubRawURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		appLog.WithError(err).Fatal("Не удалось создать клиент GitHub")
	}

	// Сервисы.
	catalogService := catalog.NewService(store, fallback)
	skillService := service.NewSkillService(skillRepo)
	seedService := service.NewSeedService(skillService)
	githubService := service.NewGitHubService(githubClient, service.NewCacheService())

	// HTTP хэндлеры.
	healthHandler := httpHandlers.NewHealthHandler(store, catalogService)
	skillHandler := httpHandlers.NewSkillHandler(catalogService, skillService)
	githubHandler := httpHandlers.NewGitHubHandler(githubService)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	engine := httpRouter.SetupRouter(cfg, healthHandler, skillHandler, githubHandler, seedHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Ошибка остановки http сервера")
		}
	})

	appLog.WithField("port", cfg.HTTPPort).WithField("backend", catalogService.Backend(ctx)).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLog.WithError(err).Fatal("Сервер завершился с ошибкой")
	}
}

// openStore подключает хранилище и применяет миграции.
// Любая ошибка оставляет сервис на вшитом каталоге.
func openStore(ctx context.Context, cfg *config.Config) *sqlx.DB {
	log := logger.Component("main")
	if !cfg.StoreEnabled() {
		log.Warn("DATABASE_URL не задан, каталог обслуживается из вшитых данных")
		return nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Warn("Хранилище недоступно, каталог обслуживается из вшитых данных")
		return nil
	}

	if err := db.RunMigrations(ctx, conn, db.Migrations); err != nil {
		log.WithError(err).Warn("Миграции не применены, хранилище отключено")
		safeClose(conn)
		return nil
	}

	return conn
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Component("main").WithError(err).Error("Ошибка закрытия базы")
	}
}
