package world

// Stats — изменяемые счётчики текущего забега.
// Принадлежат миру; ядро симуляции мутирует их напрямую в рамках
// однопоточного игрового цикла.
type Stats struct {
	Tick       uint64 // Монотонный счётчик тиков симуляции
	Score      int    // Очки забега
	Exhaustion int    // Тики до следующего разрешённого удара киркой
	Explosives int    // Взрывчатка в инвентаре
	Dug        int    // Количество выкопанных киркой тайлов
}

// Dig увеличивает счётчик выкопанных тайлов
func (s *Stats) Dig() {
	s.Dug++
}

// AddExplosive добавляет взрывчатку в инвентарь
func (s *Stats) AddExplosive() {
	s.Explosives++
}

// UseExplosive списывает одну взрывчатку из инвентаря.
// Возвращает false, если инвентарь пуст.
func (s *Stats) UseExplosive() bool {
	if s.Explosives <= 0 {
		return false
	}
	s.Explosives--
	return true
}
