package entity

import (
	"sort"
	"sync"

	"github.com/annel0/combo-targeting/internal/vec"
)

// targetSlot - именованный слот цели клиента
type targetSlot uint8

const (
	slotPrimary targetSlot = iota
	slotSoft
	slotFocus
	slotFieldMouseover
	slotLocalActor
	slotCount
)

// EntityManager хранит снимок всех загруженных сущностей и слотов целей.
// Все методы чтения возвращают копии: вызывающий код не может изменить снимок
// и не видит изменений, сделанных после чтения.
type EntityManager struct {
	entities map[ObjectID]*Entity // Хранилище всех сущностей
	slots    [slotCount]ObjectID  // Идентификаторы в слотах целей
	spatial  *spatialIndex        // Сетка XZ для поиска по дистанции
	mu       sync.RWMutex         // Мьютекс для безопасного доступа
}

// NewEntityManager создаёт пустой менеджер сущностей
func NewEntityManager() *EntityManager {
	return &EntityManager{
		entities: make(map[ObjectID]*Entity),
		spatial:  newSpatialIndex(defaultCellSize),
	}
}

// Upsert добавляет сущность или заменяет её состояние
func (em *EntityManager) Upsert(e Entity) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.entities[e.ID] = &e
	em.spatial.update(&e)
}

// Despawn удаляет сущность из снимка.
// Слоты, указывающие на неё, не очищаются: они просто перестают разрешаться.
func (em *EntityManager) Despawn(id ObjectID) bool {
	em.mu.Lock()
	defer em.mu.Unlock()

	if _, exists := em.entities[id]; !exists {
		return false
	}
	delete(em.entities, id)
	em.spatial.remove(id)
	return true
}

// LookupByID возвращает копию сущности по ID
func (em *EntityManager) LookupByID(id ObjectID) (*Entity, bool) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	return em.lookupLocked(id)
}

func (em *EntityManager) lookupLocked(id ObjectID) (*Entity, bool) {
	if !id.Valid() {
		return nil, false
	}
	e, exists := em.entities[id]
	if !exists {
		return nil, false
	}
	c := *e
	return &c, true
}

func (em *EntityManager) slot(s targetSlot) *Entity {
	em.mu.RLock()
	defer em.mu.RUnlock()
	e, _ := em.lookupLocked(em.slots[s])
	return e
}

func (em *EntityManager) setSlot(s targetSlot, id ObjectID) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.slots[s] = id
}

// CurrentPrimaryTarget возвращает основную цель или nil
func (em *EntityManager) CurrentPrimaryTarget() *Entity { return em.slot(slotPrimary) }

// SoftTarget возвращает мягкую цель или nil
func (em *EntityManager) SoftTarget() *Entity { return em.slot(slotSoft) }

// FocusTarget возвращает фокус-цель или nil
func (em *EntityManager) FocusTarget() *Entity { return em.slot(slotFocus) }

// FieldMouseoverTarget возвращает объект под курсором в мире или nil
func (em *EntityManager) FieldMouseoverTarget() *Entity { return em.slot(slotFieldMouseover) }

// LocalActor возвращает персонажа игрока или nil
func (em *EntityManager) LocalActor() *Entity { return em.slot(slotLocalActor) }

// SetPrimaryTarget задаёт основную цель по ID
func (em *EntityManager) SetPrimaryTarget(id ObjectID) { em.setSlot(slotPrimary, id) }

// SetSoftTarget задаёт мягкую цель по ID
func (em *EntityManager) SetSoftTarget(id ObjectID) { em.setSlot(slotSoft, id) }

// SetFocusTarget задаёт фокус-цель по ID
func (em *EntityManager) SetFocusTarget(id ObjectID) { em.setSlot(slotFocus, id) }

// SetFieldMouseoverTarget задаёт объект под курсором по ID
func (em *EntityManager) SetFieldMouseoverTarget(id ObjectID) { em.setSlot(slotFieldMouseover, id) }

// SetLocalActor задаёт персонажа игрока по ID
func (em *EntityManager) SetLocalActor(id ObjectID) { em.setSlot(slotLocalActor, id) }

// SetTarget записывает основную цель и цель персонажа игрока.
// nil снимает цель.
func (em *EntityManager) SetTarget(target *Entity) {
	id := InvalidObjectID
	if target != nil {
		id = target.ID
	}

	em.mu.Lock()
	defer em.mu.Unlock()

	if id == InvalidObjectID {
		em.slots[slotPrimary] = NoObjectID
	} else {
		em.slots[slotPrimary] = id
	}
	if actor, exists := em.entities[em.slots[slotLocalActor]]; exists {
		actor.TargetObjectID = id
	}
}

// EntitiesWhere возвращает копии всех сущностей, удовлетворяющих предикату, по возрастанию ID
func (em *EntityManager) EntitiesWhere(pred func(*Entity) bool) []*Entity {
	em.mu.RLock()
	defer em.mu.RUnlock()

	var result []*Entity
	for _, e := range em.entities {
		c := *e
		if pred == nil || pred(&c) {
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// GetEntitiesInRange возвращает сущности, центр которых находится в радиусе от точки (в плоскости XZ).
// Результат отсортирован по ID.
func (em *EntityManager) GetEntitiesInRange(center vec.Vec3Float, radius float64) []*Entity {
	if radius < 0 {
		return nil
	}

	em.mu.RLock()
	defer em.mu.RUnlock()

	inRange := func(e *Entity) bool { return center.PlanarDistanceTo(e.Position) <= radius }

	result := make([]*Entity, 0)
	// Для очень больших радиусов полный перебор дешевле обхода ячеек
	if em.spatial.cellSpan(center, radius) > float64(len(em.entities)) {
		for _, e := range em.entities {
			if inRange(e) {
				copied := *e
				result = append(result, &copied)
			}
		}
	} else {
		for id := range em.spatial.candidates(center, radius) {
			if e := em.entities[id]; inRange(e) {
				copied := *e
				result = append(result, &copied)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Count возвращает количество загруженных сущностей
func (em *EntityManager) Count() int {
	em.mu.RLock()
	defer em.mu.RUnlock()
	return len(em.entities)
}
