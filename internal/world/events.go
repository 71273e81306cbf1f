package world

import (
	"context"
	"encoding/json"
	"time"

	"github.com/annel0/dig-game/internal/eventbus"
	"github.com/annel0/dig-game/internal/world/tile"
	"github.com/google/uuid"
)

// Типы игровых событий, публикуемых миром в шину
const (
	EventTileBroken = "tile_broken"
	EventDetonation = "detonation"
)

// TileBrokenEvent описывает разрушение тайла
type TileBrokenEvent struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Type  string `json:"type"`
	Kind  string `json:"kind"`
	Score int    `json:"score"`
}

// DetonationEvent описывает состоявшийся взрыв
type DetonationEvent struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

func publishTileBroken(t *Tile, kind tile.DamageKind) {
	publishEvent(EventTileBroken, TileBrokenEvent{
		X:     t.pos.X,
		Y:     t.pos.Y,
		Type:  tile.Name(t.id),
		Kind:  kind.String(),
		Score: tile.Score(t.id),
	})
}

func publishDetonation(t *Tile, radius int) {
	publishEvent(EventDetonation, DetonationEvent{
		X:      t.pos.X,
		Y:      t.pos.Y,
		Radius: radius,
	})
}

// publishEvent сериализует полезную нагрузку и отправляет конверт в
// глобальную шину. Публикация не должна тормозить симуляцию: шина
// неблокирующая для событий низкого приоритета.
func publishEvent(eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = eventbus.Publish(context.Background(), &eventbus.Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    "world",
		EventType: eventType,
		Version:   1,
		Priority:  3,
		Payload:   data,
	})
}
