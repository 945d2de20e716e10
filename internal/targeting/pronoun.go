package targeting

// PronounID - числовой код семантической ссылки на цель ("последняя цель", "слот группы 3"...)
type PronounID uint32

const (
	PronounPartySlot2   PronounID = 44
	PronounPartySlot3   PronounID = 45
	PronounPartySlot4   PronounID = 46
	PronounPartySlot5   PronounID = 47
	PronounPartySlot6   PronounID = 48
	PronounPartySlot7   PronounID = 49
	PronounPartySlot8   PronounID = 50
	PronounLastTarget   PronounID = 1006
	PronounLastAttacker PronounID = 1008
	PronounLastEnemy    PronounID = 1084
)

// pronounBySelector - таблица косвенного разрешения через местоимения
var pronounBySelector = map[Selector]PronounID{
	LastTarget:   PronounLastTarget,
	LastEnemy:    PronounLastEnemy,
	LastAttacker: PronounLastAttacker,
	PartySlot2:   PronounPartySlot2,
	PartySlot3:   PronounPartySlot3,
	PartySlot4:   PronounPartySlot4,
	PartySlot5:   PronounPartySlot5,
	PartySlot6:   PronounPartySlot6,
	PartySlot7:   PronounPartySlot7,
	PartySlot8:   PronounPartySlot8,
}

// PronounFor возвращает код местоимения для селектора
func PronounFor(s Selector) (PronounID, bool) {
	id, ok := pronounBySelector[s]
	return id, ok
}
