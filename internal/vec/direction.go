package vec

// Direction определяет одно из четырёх кардинальных направлений
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions содержит все кардинальные направления в порядке обхода
var Directions = [4]Direction{Up, Right, Down, Left}

// Offset возвращает единичное смещение для направления.
// Ось Y направлена вниз (экранные координаты).
func (d Direction) Offset() Vec2 {
	switch d {
	case Up:
		return Vec2{X: 0, Y: -1}
	case Right:
		return Vec2{X: 1, Y: 0}
	case Down:
		return Vec2{X: 0, Y: 1}
	case Left:
		return Vec2{X: -1, Y: 0}
	default:
		return Vec2{}
	}
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	return Direction((int(d) + 2) % 4)
}

// Bit возвращает битовую маску направления (для масок граней тайла)
func (d Direction) Bit() uint8 {
	return 1 << uint(d)
}

// String возвращает строковое представление направления
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}
