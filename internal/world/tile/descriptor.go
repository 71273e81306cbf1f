package tile

// UpdateHookFunc вызывается для тайла не более одного раза за тик симуляции.
type UpdateHookFunc func(api API)

// DamageHookFunc вызывается перед общей обработкой урона.
// Возврат true подавляет общую обработку (списание прочности, разрушение).
type DamageHookFunc func(api API, kind DamageKind, amount int) bool

// BreakHookFunc вызывается после разрушения тайла (тайл уже удалён из сетки).
type BreakHookFunc func(api API, kind DamageKind)

// PointerHookFunc обрабатывает событие указателя.
// Возврат true означает, что событие обработано и поведение по умолчанию
// выполнять не нужно.
type PointerHookFunc func(api API) bool

// Descriptor — декларативное описание типа тайла: плоские данные плюс
// небольшой закрытый набор необязательных слотов поведения.
// Ровно один дескриптор на тип; таблица неизменяема после Validate().
//
// Необязательные наследуемые свойства выражены указателями: nil означает
// «не задано», и резолвер продолжает поиск по цепочке Base.
type Descriptor struct {
	Name string // Человекочитаемое имя типа

	// Base — необязательный тип-родитель для разрешения свойств.
	// В этой игре используется одиночное перенаправление, но резолвер
	// обязан поддерживать цепочки (и отвергать циклы при загрузке).
	Base *ID

	// BreakThreshold — минимальный вид урона, способный повредить тип.
	// Не задан — тип считается неуязвимым.
	BreakThreshold *DamageKind

	// Category — необязательная классификация (например, "Ore"),
	// используется только для группировки спрайтов.
	Category *string

	// Background — тип, отрисовываемый позади этого.
	Background *ID

	// EmittedLight — фиксированная эмиссия света (источники света).
	EmittedLight *int

	// Score — очки, начисляемые за разрушение.
	Score *int

	// MaskPattern — идентификатор шаблона сглаживания граней.
	MaskPattern *string

	// Звуки попадания и разрушения; не заданы — общие SoundHit/SoundBreak.
	HitSound   *SoundKind
	BreakSound *SoundKind

	// Булевы черты типа (наследуемые).
	Invisible     *bool
	Nonselectable *bool
	Separated     *bool

	// Слоты поведения. Вызываются по схеме lookup-and-invoke-if-present.
	OnUpdate UpdateHookFunc
	OnDamage DamageHookFunc
	OnBreak  BreakHookFunc

	OnEnter      PointerHookFunc
	OnLeave      PointerHookFunc
	OnClick      PointerHookFunc
	OnRightClick PointerHookFunc
	OnDown       PointerHookFunc
	OnUp         PointerHookFunc
	OnHold       PointerHookFunc
}
