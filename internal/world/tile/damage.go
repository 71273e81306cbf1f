package tile

// DamageKind представляет упорядоченную категорию урона.
// Порядок имеет значение: порог разрушения сравнивается как kind >= threshold.
type DamageKind uint8

const (
	DamageNone DamageKind = iota
	DamageMining
	DamageExplosion
	// DamageInvulnerable — недостижимый порог: тип с таким порогом
	// не получает урон ни от одного вида воздействия.
	DamageInvulnerable
)

// Meets сообщает, достаточно ли вида урона для порога threshold.
func (k DamageKind) Meets(threshold DamageKind) bool {
	if threshold == DamageInvulnerable {
		return false
	}
	return k >= threshold
}

// String возвращает строковое представление вида урона
func (k DamageKind) String() string {
	switch k {
	case DamageNone:
		return "none"
	case DamageMining:
		return "mining"
	case DamageExplosion:
		return "explosion"
	case DamageInvulnerable:
		return "invulnerable"
	default:
		return "unknown"
	}
}
