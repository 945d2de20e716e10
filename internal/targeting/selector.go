package targeting

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSelector возвращается при разборе неизвестного имени селектора
var ErrUnknownSelector = errors.New("неизвестный селектор цели")

// Selector - стратегия разрешения цели
type Selector uint8

const (
	PrimaryTarget Selector = iota
	SoftTarget
	FocusTarget
	UIMouseoverTarget
	FieldMouseoverTarget
	TargetOfTarget
	SelfActor
	LastTarget
	LastEnemy
	LastAttacker
	PartySlot2
	PartySlot3
	PartySlot4
	PartySlot5
	PartySlot6
	PartySlot7
	PartySlot8

	selectorCount
)

var selectorNames = [selectorCount]string{
	PrimaryTarget:        "target",
	SoftTarget:           "soft_target",
	FocusTarget:          "focus_target",
	UIMouseoverTarget:    "ui_mouseover",
	FieldMouseoverTarget: "field_mouseover",
	TargetOfTarget:       "target_of_target",
	SelfActor:            "self",
	LastTarget:           "last_target",
	LastEnemy:            "last_enemy",
	LastAttacker:         "last_attacker",
	PartySlot2:           "p2",
	PartySlot3:           "p3",
	PartySlot4:           "p4",
	PartySlot5:           "p5",
	PartySlot6:           "p6",
	PartySlot7:           "p7",
	PartySlot8:           "p8",
}

// Valid проверяет, входит ли значение в закрытый набор селекторов
func (s Selector) Valid() bool {
	return s < selectorCount
}

// String возвращает имя селектора
func (s Selector) String() string {
	if !s.Valid() {
		return fmt.Sprintf("selector(%d)", uint8(s))
	}
	return selectorNames[s]
}

// ParseSelector разбирает имя селектора (регистр не важен)
func ParseSelector(name string) (Selector, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range selectorNames {
		if n == name {
			return Selector(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSelector, name)
}

// AllSelectors возвращает все селекторы в порядке объявления
func AllSelectors() []Selector {
	all := make([]Selector, 0, selectorCount)
	for s := Selector(0); s < selectorCount; s++ {
		all = append(all, s)
	}
	return all
}

// mustBeValid останавливает выполнение на селекторе вне закрытого набора:
// неправильно выбранная цель опаснее паники.
func mustBeValid(s Selector) {
	if !s.Valid() {
		panic(fmt.Sprintf("targeting: недопустимый селектор %d", uint8(s)))
	}
}
