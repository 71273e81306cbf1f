package world

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/annel0/dig-game/internal/world/tile"
	"github.com/klauspost/compress/zstd"
)

// SnapshotCell — состояние одной занятой ячейки для внешних
// потребителей (рендерер, REST API).
type SnapshotCell struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Type       string `json:"type"`
	Sprite     string `json:"sprite"`
	Light      int    `json:"light"`
	Mask       uint8  `json:"mask"`
	Accessible bool   `json:"accessible"`
}

// Snapshot — read-only снимок мира. Это не формат сохранения:
// снимок никогда не читается обратно в симуляцию.
type Snapshot struct {
	Tick   uint64         `json:"tick"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Stats  Stats          `json:"stats"`
	Cells  []SnapshotCell `json:"cells"`
}

// BuildSnapshot собирает снимок текущего состояния мира.
// Запрос света ленивый и может помечать соседей устаревшими — снимок
// участвует в сходимости освещения наравне с обычными запросами.
func (w *World) BuildSnapshot() *Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := &Snapshot{
		Tick:   w.stats.Tick,
		Width:  w.width,
		Height: w.height,
		Stats:  w.stats,
		Cells:  make([]SnapshotCell, 0, len(w.tiles)),
	}
	for _, t := range w.tiles {
		s.Cells = append(s.Cells, SnapshotCell{
			X:          t.pos.X,
			Y:          t.pos.Y,
			Type:       tile.Name(t.id),
			Sprite:     tile.Sprite(t.id),
			Light:      t.Light(),
			Mask:       t.Mask(),
			Accessible: t.Accessible(),
		})
	}
	return s
}

// TileInfo — развернутое состояние одной ячейки для точечных запросов.
type TileInfo struct {
	Type       tile.ID
	Name       string
	Sprite     string
	Light      int
	Mask       uint8
	Accessible bool
	Mineable   bool
	BreakAnim  int
}

// TileInfo возвращает состояние ячейки под мьютексом мира: тики и
// события указателя идут из других горутин, а запрос света ленивый и
// пишет в кэши тайла и соседей. Второй результат false — ячейка пуста.
func (w *World) TileInfo(x, y int) (TileInfo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.GetTile(x, y)
	if t == nil {
		return TileInfo{}, false
	}
	return TileInfo{
		Type:       t.id,
		Name:       tile.Name(t.id),
		Sprite:     tile.Sprite(t.id),
		Light:      t.Light(),
		Mask:       t.Mask(),
		Accessible: t.Accessible(),
		Mineable:   t.Mineable(),
		BreakAnim:  t.breakAnim,
	}, true
}

var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdInitErr error
)

func initZstd() {
	zstdOnce.Do(func() {
		zstdEncoder, zstdInitErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdInitErr != nil {
			return
		}
		zstdDecoder, zstdInitErr = zstd.NewReader(nil)
	})
}

// Encode сериализует снимок в JSON и сжимает zstd
func (s *Snapshot) Encode() ([]byte, error) {
	initZstd()
	if zstdInitErr != nil {
		return nil, fmt.Errorf("zstd init: %w", zstdInitErr)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot marshal: %w", err)
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

// DecodeSnapshot распаковывает и разбирает снимок мира
func DecodeSnapshot(compressed []byte) (*Snapshot, error) {
	initZstd()
	if zstdInitErr != nil {
		return nil, fmt.Errorf("zstd init: %w", zstdInitErr)
	}
	data, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot decompress: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot unmarshal: %w", err)
	}
	return &s, nil
}
