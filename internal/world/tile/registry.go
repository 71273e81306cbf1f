package tile

import "fmt"

// ID представляет идентификатор типа тайла
type ID uint16

// Константы ID типов тайлов
const (
	// Базовая порода и её производные
	RockID ID = iota // 0
	DirtID           // 1
	GrassID          // 2

	// Руды (начиная со 100)
	EmeraldID ID = 100
	RubyID    ID = 101
	DiamondID ID = 102
	GoldID    ID = 103

	// Специальные типы (начиная с 200)
	MetalID      ID = 200 // Разрушается только взрывом
	ExplosivesID ID = 201 // Детонирует от взрыва, добывается в инвентарь
	CavernID     ID = 202 // Пустота: невидимая, отделённая
	MineshaftID  ID = 203 // Вход в шахту: источник света
)

var registry = make(map[ID]*Descriptor)

// Register добавляет дескриптор типа в таблицу.
// Повторная регистрация одного ID — ошибка конфигурации.
func Register(id ID, d *Descriptor) {
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("tile: повторная регистрация типа %d (%s)", id, d.Name))
	}
	registry[id] = d
}

// Get возвращает дескриптор для указанного ID
func Get(id ID) (*Descriptor, bool) {
	d, exists := registry[id]
	return d, exists
}

// IsValidID проверяет, зарегистрирован ли тип
func IsValidID(id ID) bool {
	_, exists := registry[id]
	return exists
}

// All возвращает ID всех зарегистрированных типов
func All() []ID {
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

// Validate проверяет таблицу типов целиком: каждый Base должен ссылаться
// на зарегистрированный тип, а цепочки Base не должны содержать циклов.
// Вызывается один раз при старте — ошибки конфигурации обнаруживаются
// до первого обращения к резолверу, а не во время игры.
func Validate() error {
	return validate(registry)
}

func validate(registry map[ID]*Descriptor) error {
	for id, d := range registry {
		seen := map[ID]bool{id: true}
		cur := d
		for cur.Base != nil {
			base := *cur.Base
			if seen[base] {
				return fmt.Errorf("tile: цикл в цепочке base у типа %d (%s)", id, d.Name)
			}
			next, exists := registry[base]
			if !exists {
				return fmt.Errorf("tile: тип %d (%s) ссылается на незарегистрированный base %d", id, d.Name, base)
			}
			seen[base] = true
			cur = next
		}
	}
	return nil
}

// MustValidate вызывает Validate и паникует при ошибке конфигурации
func MustValidate() {
	if err := Validate(); err != nil {
		panic(err)
	}
}
