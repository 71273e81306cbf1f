package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator генерирует затухающий тон с парой гармоник
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	vol  float64
	pos  int
}

// NewToneGenerator создает генератор тона
func NewToneGenerator(sr beep.SampleRate, freq, vol float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, vol: vol}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		sample += 0.6 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.25 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)

		// Быстрая атака, экспоненциальный спад
		attack := math.Min(t/0.005, 1.0)
		sample *= attack * math.Exp(-t*20) * g.vol

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// ChimeGenerator генерирует восходящий перезвон для сбора предметов
type ChimeGenerator struct {
	sr   beep.SampleRate
	base float64
	pos  int
}

// NewChimeGenerator создает генератор перезвона
func NewChimeGenerator(sr beep.SampleRate, base float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, base: base}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Две ноты: основная и квинта с задержкой 80мс
		sample := 0.2 * math.Exp(-t*12) * math.Sin(2*math.Pi*g.base*t)
		if t > 0.08 {
			t2 := t - 0.08
			sample += 0.2 * math.Exp(-t2*12) * math.Sin(2*math.Pi*g.base*1.5*t2)
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// CrackleGenerator генерирует треск ломающейся породы
type CrackleGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewCrackleGenerator создает генератор треска
func NewCrackleGenerator(sr beep.SampleRate) *CrackleGenerator {
	return &CrackleGenerator{sr: sr, seed: time.Now().UnixNano()}
}

func (g *CrackleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 10)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		rumble := 0.3 * math.Sin(2*math.Pi*90*t)

		sample := envelope * (0.25*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrackleGenerator) Err() error {
	return nil
}

// RumbleGenerator генерирует низкочастотный грохот взрыва
type RumbleGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewRumbleGenerator создает генератор грохота
func NewRumbleGenerator(sr beep.SampleRate) *RumbleGenerator {
	return &RumbleGenerator{sr: sr, seed: time.Now().UnixNano()}
}

func (g *RumbleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Медленный спад, частота съезжает вниз от 120Гц к 40Гц
		envelope := math.Exp(-t * 4)
		freq := 40 + 80*envelope

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		sample := envelope * (0.45*math.Sin(2*math.Pi*freq*t) + 0.2*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RumbleGenerator) Err() error {
	return nil
}
