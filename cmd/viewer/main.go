package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/annel0/dig-game/internal/audio"
	"github.com/annel0/dig-game/internal/config"
	"github.com/annel0/dig-game/internal/render"
	"github.com/annel0/dig-game/internal/world"
)

// Локальный терминальный клиент: создает мир и играет без сервера.
func main() {
	cfgPath := os.Getenv("DIG_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	seed := cfg.World.GetSeed()

	var sound world.Sound = world.NullSound{}
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err == nil {
			sound = sm
			defer sm.Cleanup()
		}
	}

	particles := render.NewParticleField(seed)

	w, err := world.New(world.Options{
		Width:     cfg.World.GetWidth(),
		Height:    cfg.World.GetHeight(),
		Seed:      seed,
		Sound:     sound,
		Particles: particles,
	})
	if err != nil {
		log.Fatalf("ошибка создания мира: %v", err)
	}

	world.NewGenerator(seed).Generate(w)

	viewer, err := render.NewViewer(w, particles)
	if err != nil {
		log.Fatalf("ошибка инициализации терминала: %v", err)
	}

	tickInterval := time.Duration(cfg.World.GetTickMillis()) * time.Millisecond
	if err := viewer.Run(context.Background(), tickInterval); err != nil {
		log.Fatalf("ошибка главного цикла: %v", err)
	}
}
