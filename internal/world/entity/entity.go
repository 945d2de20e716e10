package entity

import (
	"fmt"
	"strings"

	"github.com/annel0/combo-targeting/internal/physics"
	"github.com/annel0/combo-targeting/internal/vec"
)

// ObjectID - идентификатор загруженного объекта клиента.
// Уникален только среди загруженных объектов: после выгрузки сущности id может быть переиспользован.
type ObjectID uint64

const (
	// NoObjectID - пустой идентификатор
	NoObjectID ObjectID = 0
	// InvalidObjectID - сентинел "нет цели" в поле цели сущности
	InvalidObjectID ObjectID = 0xE0000000
)

// Valid проверяет, может ли id указывать на объект
func (id ObjectID) Valid() bool {
	return id != NoObjectID && id != InvalidObjectID
}

// ObjectKind представляет тип объекта мира
type ObjectKind uint8

const (
	ObjectKindNone ObjectKind = iota
	ObjectKindPlayer
	ObjectKindBattleNpc
	ObjectKindEventNpc
	ObjectKindTreasure
	ObjectKindAetheryte
	ObjectKindGatheringPoint
	ObjectKindEventObj
	ObjectKindCompanion ObjectKind = 9
	ObjectKindRetainer  ObjectKind = 10
)

var objectKindNames = map[ObjectKind]string{
	ObjectKindNone:           "none",
	ObjectKindPlayer:         "player",
	ObjectKindBattleNpc:      "battle_npc",
	ObjectKindEventNpc:       "event_npc",
	ObjectKindTreasure:       "treasure",
	ObjectKindAetheryte:      "aetheryte",
	ObjectKindGatheringPoint: "gathering_point",
	ObjectKindEventObj:       "event_obj",
	ObjectKindCompanion:      "companion",
	ObjectKindRetainer:       "retainer",
}

// String возвращает строковое представление типа объекта
func (k ObjectKind) String() string {
	if name, ok := objectKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseObjectKind разбирает имя типа объекта
func ParseObjectKind(name string) (ObjectKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range objectKindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return ObjectKindNone, fmt.Errorf("неизвестный тип объекта %q", name)
}

// BattleNpcSubKind - подтип боевого NPC
type BattleNpcSubKind uint8

const (
	SubKindNone BattleNpcSubKind = 0
	// SubKindLegacyEnemy - устаревший код врага, обрабатывается так же, как SubKindEnemy
	SubKindLegacyEnemy    BattleNpcSubKind = 1
	SubKindPet            BattleNpcSubKind = 2
	SubKindChocobo        BattleNpcSubKind = 3
	SubKindEnemy          BattleNpcSubKind = 5
	SubKindNpcPartyMember BattleNpcSubKind = 9
)

var subKindNames = map[BattleNpcSubKind]string{
	SubKindNone:           "none",
	SubKindLegacyEnemy:    "legacy_enemy",
	SubKindPet:            "pet",
	SubKindChocobo:        "chocobo",
	SubKindEnemy:          "enemy",
	SubKindNpcPartyMember: "npc_party_member",
}

// String возвращает строковое представление подтипа
func (s BattleNpcSubKind) String() string {
	if name, ok := subKindNames[s]; ok {
		return name
	}
	return fmt.Sprintf("subkind(%d)", uint8(s))
}

// ParseSubKind разбирает имя подтипа боевого NPC
func ParseSubKind(name string) (BattleNpcSubKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SubKindNone, nil
	}
	for sub, subName := range subKindNames {
		if subName == name {
			return sub, nil
		}
	}
	return SubKindNone, fmt.Errorf("неизвестный подтип NPC %q", name)
}

// IsEnemy проверяет, помечен ли подтип как враждебный.
// Оба кода - основной Enemy и устаревший - считаются врагами.
func (s BattleNpcSubKind) IsEnemy() bool {
	return s == SubKindEnemy || s == SubKindLegacyEnemy
}

// Entity - снимок состояния объекта мира на момент чтения
type Entity struct {
	ID                  ObjectID         // Идентификатор объекта
	Kind                ObjectKind       // Тип объекта
	SubKind             BattleNpcSubKind // Подтип (только для боевых NPC)
	TemplateID          uint32           // Идентификатор шаблона NPC
	ClassJob            uint8            // Профессия (0 - нет)
	Name                string           // Отображаемое имя
	Position            vec.Vec3Float    // Позиция в мире
	Rotation            float64          // Направление взгляда в радианах
	HitboxRadius        float64          // Радиус хитбокса
	CurrentHP           uint32           // Текущее здоровье
	MaxHP               uint32           // Максимальное здоровье
	IsCasting           bool             // Идёт ли каст
	IsCastInterruptible bool             // Можно ли прервать текущий каст
	TargetObjectID      ObjectID         // Цель этой сущности (InvalidObjectID - нет цели)
	RawDistance         float64          // Линейная дистанция до игрока, как её считает движок
}

// IsBattleChara проверяет, является ли объект боевым персонажем (игрок или боевой NPC)
func (e *Entity) IsBattleChara() bool {
	return e != nil && (e.Kind == ObjectKindPlayer || e.Kind == ObjectKindBattleNpc)
}

// IsBattleNpc проверяет, является ли объект боевым NPC
func (e *Entity) IsBattleNpc() bool {
	return e != nil && e.Kind == ObjectKindBattleNpc
}

// HasTarget проверяет, есть ли у сущности своя цель
func (e *Entity) HasTarget() bool {
	return e != nil && e.TargetObjectID.Valid()
}

// Collider возвращает круглый хитбокс сущности
func (e *Entity) Collider() physics.CircleCollider {
	return physics.NewCircleCollider(e.Position, e.HitboxRadius)
}

// String возвращает краткое описание сущности для логов
func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d(%s)", e.Kind, e.ID, e.Name)
}
