package audio

import (
	"sync"
	"time"

	"github.com/annel0/dig-game/internal/world/tile"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager воспроизводит эффекты мира через единый микшер.
// Реализует интерфейс Sound из пакета world.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager создает новый звуковой менеджер
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize инициализирует аудиосистему
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup останавливает все звуки
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.mixer.Clear()
	sm.initialized = false
}

// Play воспроизводит эффект по его виду. До инициализации — тишина,
// так что ядро симуляции может звать Play безусловно.
func (sm *SoundManager) Play(kind tile.SoundKind) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	var streamer beep.Streamer
	switch kind {
	case tile.SoundHit:
		// Глухой удар кирки по породе
		streamer = beep.Take(sampleRate.N(time.Millisecond*80), NewToneGenerator(sampleRate, 180, 0.25))
	case tile.SoundMetalHit:
		// Звонкий отскок от металла
		streamer = beep.Take(sampleRate.N(time.Millisecond*120), NewToneGenerator(sampleRate, 820, 0.2))
	case tile.SoundBreak:
		streamer = beep.Take(sampleRate.N(time.Millisecond*250), NewCrackleGenerator(sampleRate))
	case tile.SoundGem:
		streamer = beep.Take(sampleRate.N(time.Millisecond*300), NewChimeGenerator(sampleRate, 1040))
	case tile.SoundCollect:
		streamer = beep.Take(sampleRate.N(time.Millisecond*200), NewChimeGenerator(sampleRate, 660))
	case tile.SoundExplosion:
		streamer = beep.Take(sampleRate.N(time.Millisecond*600), NewRumbleGenerator(sampleRate))
	default:
		return
	}

	sm.mixer.Add(streamer)
}
