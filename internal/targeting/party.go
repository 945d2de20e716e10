package targeting

import "github.com/annel0/combo-targeting/internal/world/entity"

// partySlots - слоты группы 2..8 в порядке возрастания
var partySlots = [...]Selector{
	PartySlot2,
	PartySlot3,
	PartySlot4,
	PartySlot5,
	PartySlot6,
	PartySlot7,
	PartySlot8,
}

// SelfPartyIndex - номер слота самого игрока
const SelfPartyIndex = 1

// PartyIndex возвращает номер слота группы (2..8), в котором находится объект.
// Побеждает первый совпавший слот; если совпадений нет, возвращается 1.
func (r *Resolver) PartyIndex(id entity.ObjectID) int {
	for index := 2; index <= 8; index++ {
		sel, _ := PartySlot(index)
		if e := r.resolve(sel); e != nil && e.ID == id {
			return index
		}
	}
	return SelfPartyIndex
}

// PartySlot возвращает селектор для слота группы 2..8
func PartySlot(index int) (Selector, bool) {
	if index < 2 || index > 8 {
		return 0, false
	}
	return partySlots[index-2], true
}
