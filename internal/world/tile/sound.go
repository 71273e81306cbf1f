package tile

// SoundKind идентифицирует звуковой эффект, запрашиваемый симуляцией.
// Воспроизведение — забота внешнего коллаборатора (fire-and-forget).
type SoundKind string

const (
	SoundHit       SoundKind = "hit"
	SoundBreak     SoundKind = "break"
	SoundMetalHit  SoundKind = "metal_hit"
	SoundGem       SoundKind = "gem"
	SoundCollect   SoundKind = "collect"
	SoundExplosion SoundKind = "explosion"
)
