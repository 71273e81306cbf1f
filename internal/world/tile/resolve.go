package tile

// walk обходит цепочку Base начиная с id и вызывает fn для каждого
// дескриптора, пока fn не вернёт true. Циклы отвергаются в Validate(),
// поэтому обход здесь не защищается повторно.
func walk(id ID, fn func(*Descriptor) bool) {
	d, exists := registry[id]
	for exists {
		if fn(d) {
			return
		}
		if d.Base == nil {
			return
		}
		d, exists = registry[*d.Base]
	}
}

// resolve возвращает первое заданное значение свойства по цепочке Base.
func resolve[T any](id ID, pick func(*Descriptor) *T) (T, bool) {
	var value T
	found := false
	walk(id, func(d *Descriptor) bool {
		if p := pick(d); p != nil {
			value = *p
			found = true
			return true
		}
		return false
	})
	return value, found
}

// Resolve возвращает значение свойства для типа id, поднимаясь по цепочке
// Base, либо значение def, если свойство нигде не задано.
func Resolve[T any](id ID, pick func(*Descriptor) *T, def T) T {
	if value, found := resolve(id, pick); found {
		return value
	}
	return def
}

// BreakThreshold возвращает порог разрушения типа.
// Не задан по всей цепочке — тип неуязвим.
func BreakThreshold(id ID) DamageKind {
	return Resolve(id, func(d *Descriptor) *DamageKind { return d.BreakThreshold }, DamageInvulnerable)
}

// EmittedLight возвращает фиксированную эмиссию света типа, если задана.
func EmittedLight(id ID) (int, bool) {
	return resolve(id, func(d *Descriptor) *int { return d.EmittedLight })
}

// Score возвращает очки за разрушение типа
func Score(id ID) int {
	return Resolve(id, func(d *Descriptor) *int { return d.Score }, 0)
}

// Category возвращает классификацию типа, если задана
func Category(id ID) (string, bool) {
	return resolve(id, func(d *Descriptor) *string { return d.Category })
}

// Background возвращает тип, отрисовываемый позади данного, если задан
func Background(id ID) (ID, bool) {
	return resolve(id, func(d *Descriptor) *ID { return d.Background })
}

// MaskPattern возвращает шаблон сглаживания граней типа
func MaskPattern(id ID) string {
	return Resolve(id, func(d *Descriptor) *string { return d.MaskPattern }, "")
}

// Invisible сообщает, является ли тип невидимым
func Invisible(id ID) bool {
	return Resolve(id, func(d *Descriptor) *bool { return d.Invisible }, false)
}

// Nonselectable сообщает, запрещено ли выделение типа
func Nonselectable(id ID) bool {
	return Resolve(id, func(d *Descriptor) *bool { return d.Nonselectable }, false)
}

// Separated сообщает, считается ли тип визуально отделённым от соседей
func Separated(id ID) bool {
	return Resolve(id, func(d *Descriptor) *bool { return d.Separated }, false)
}

// HitSound возвращает звук попадания по типу (общий SoundHit, если не задан)
func HitSound(id ID) SoundKind {
	return Resolve(id, func(d *Descriptor) *SoundKind { return d.HitSound }, SoundHit)
}

// BreakSound возвращает звук разрушения типа (общий SoundBreak, если не задан)
func BreakSound(id ID) SoundKind {
	return Resolve(id, func(d *Descriptor) *SoundKind { return d.BreakSound }, SoundBreak)
}

// Name возвращает имя типа (имя не наследуется)
func Name(id ID) string {
	if d, exists := registry[id]; exists {
		return d.Name
	}
	return "unknown"
}

// Sprite возвращает имя спрайта для типа: категория, если задана по
// цепочке, иначе собственное имя типа.
func Sprite(id ID) string {
	if category, found := Category(id); found {
		return category
	}
	return Name(id)
}

// UpdateHook возвращает первый заданный хук обновления по цепочке Base
func UpdateHook(id ID) UpdateHookFunc {
	var hook UpdateHookFunc
	walk(id, func(d *Descriptor) bool {
		hook = d.OnUpdate
		return hook != nil
	})
	return hook
}

// DamageHook возвращает первый заданный хук урона по цепочке Base
func DamageHook(id ID) DamageHookFunc {
	var hook DamageHookFunc
	walk(id, func(d *Descriptor) bool {
		hook = d.OnDamage
		return hook != nil
	})
	return hook
}

// BreakHook возвращает первый заданный хук разрушения по цепочке Base
func BreakHook(id ID) BreakHookFunc {
	var hook BreakHookFunc
	walk(id, func(d *Descriptor) bool {
		hook = d.OnBreak
		return hook != nil
	})
	return hook
}

// PointerEvent идентифицирует событие указателя для маршрутизации
type PointerEvent int

const (
	PointerEnter PointerEvent = iota
	PointerLeave
	PointerClick
	PointerRightClick
	PointerDown
	PointerUp
	PointerHold
)

// PointerHook возвращает первый заданный хук события указателя по цепочке Base
func PointerHook(id ID, event PointerEvent) PointerHookFunc {
	var hook PointerHookFunc
	walk(id, func(d *Descriptor) bool {
		switch event {
		case PointerEnter:
			hook = d.OnEnter
		case PointerLeave:
			hook = d.OnLeave
		case PointerClick:
			hook = d.OnClick
		case PointerRightClick:
			hook = d.OnRightClick
		case PointerDown:
			hook = d.OnDown
		case PointerUp:
			hook = d.OnUp
		case PointerHold:
			hook = d.OnHold
		}
		return hook != nil
	})
	return hook
}
