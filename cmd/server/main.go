package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/dig-game/internal/api"
	"github.com/annel0/dig-game/internal/audio"
	"github.com/annel0/dig-game/internal/auth"
	"github.com/annel0/dig-game/internal/config"
	"github.com/annel0/dig-game/internal/eventbus"
	"github.com/annel0/dig-game/internal/logging"
	"github.com/annel0/dig-game/internal/observability"
	"github.com/annel0/dig-game/internal/world"
)

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("⛏️  Запуск Dig Game Server...")

	// === КОНФИГУРАЦИЯ ===
	cfgPath := os.Getenv("DIG_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	seed := cfg.World.GetSeed()
	width := cfg.World.GetWidth()
	height := cfg.World.GetHeight()
	tickInterval := time.Duration(cfg.World.GetTickMillis()) * time.Millisecond

	logging.Info("📡 Конфигурация: REST=%s, мир %dx%d, сид=%d, такт=%v",
		restPort, width, height, seed, tickInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === ТЕЛЕМЕТРИЯ ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, "dig-game", "v0.1.0")
	if err != nil {
		logging.Warn("⚠️ Телеметрия недоступна: %v", err)
	}

	// === ШИНА СОБЫТИЙ ===
	var bus eventbus.EventBus
	if cfg.EventBus.URL != "" {
		retention := time.Duration(cfg.EventBus.Retention) * time.Hour
		jsBus, err := eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream, retention)
		if err != nil {
			logging.Error("❌ Ошибка подключения к NATS: %v", err)
			log.Fatalf("❌ Ошибка подключения к NATS: %v", err)
		}
		defer jsBus.Close()
		bus = jsBus
		logging.Info("📨 Шина событий: JetStream %s", cfg.EventBus.URL)
	} else {
		bus = eventbus.NewMemoryBus(1024)
		logging.Info("📨 Шина событий: in-memory")
	}
	eventbus.Init(bus)

	exporter := eventbus.NewMetricsExporter(bus)
	exporter.Start()
	defer exporter.Stop()

	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("⚠️ Слушатель событий не запущен: %v", err)
	}

	// === ЗВУК ===
	var sound world.Sound = world.NullSound{}
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logging.Warn("⚠️ Аудио недоступно, продолжаем без звука: %v", err)
		} else {
			sound = sm
			defer sm.Cleanup()
		}
	}

	// === МИР ===
	logging.Debug("Создание мира...")
	w, err := world.New(world.Options{
		Width:  width,
		Height: height,
		Seed:   seed,
		Sound:  sound,
	})
	if err != nil {
		logging.Error("❌ Ошибка создания мира: %v", err)
		log.Fatalf("❌ Ошибка создания мира: %v", err)
	}

	world.NewGenerator(seed).Generate(w)
	logging.Info("🌍 Мир сгенерирован: %dx%d тайлов", width, height)

	// Цикл симуляции
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Step()
			}
		}
	}()

	// === REST API ===
	if secret := cfg.Auth.GetJWTSecret(); secret != "" {
		if err := auth.SetJWTSecret(secret); err != nil {
			logging.Error("❌ Некорректный JWT секрет: %v", err)
			log.Fatalf("❌ Некорректный JWT секрет: %v", err)
		}
		logging.Info("🔑 JWT секрет загружен из конфигурации")
	}

	userRepo, err := auth.NewMemoryUserRepo()
	if err != nil {
		logging.Error("❌ Ошибка создания репозитория пользователей: %v", err)
		log.Fatalf("❌ Ошибка создания репозитория пользователей: %v", err)
	}

	restServer := api.NewRestServer(api.Config{
		Port:     restPort,
		UserRepo: userRepo,
		World:    w,
	})

	go func() {
		if err := restServer.Start(); err != nil {
			logging.Error("❌ Ошибка REST сервера: %v", err)
		}
	}()

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   🔐 JWT аутентификация активирована")
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("💡 Примеры использования REST API:")
	logging.Info("   curl http://localhost%s/health", restPort)
	logging.Info("   curl -X POST http://localhost%s/api/auth/login -H 'Content-Type: application/json' -d '{\"username\":\"digger\",\"password\":\"digger\"}'", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}

	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logging.Warn("⚠️ Ошибка остановки телеметрии: %v", err)
		}
	}

	logging.Info("👋 Сервер успешно остановлен")
}
