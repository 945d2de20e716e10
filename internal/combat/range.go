package combat

import (
	"github.com/annel0/combo-targeting/internal/config"
	"github.com/annel0/combo-targeting/internal/physics"
	"github.com/annel0/combo-targeting/internal/vec"
	"github.com/annel0/combo-targeting/internal/world/entity"
)

// TargetableRange - граница дистанции, после которой цель нельзя выбрать
const TargetableRange = 30.0

// DistanceTo возвращает боевую дистанцию до цели: плоское расстояние минус оба хитбокса, не меньше нуля.
// Ноль - если цели или персонажа нет, цель не боевой персонаж или цель - сам игрок.
func (c *Classifier) DistanceTo(target *entity.Entity) float64 {
	actor := c.world.LocalActor()
	if target == nil || actor == nil {
		return 0
	}
	if !target.IsBattleChara() {
		return 0
	}
	if target.ID == actor.ID {
		return 0
	}
	return physics.EdgeDistance(target.Collider(), actor.Collider())
}

// TargetDistance возвращает боевую дистанцию до основной цели
func (c *Classifier) TargetDistance() float64 {
	return c.DistanceTo(c.CurrentTarget())
}

// InMeleeRange проверяет, находится ли основная цель в ближнем бою (3 ялма + смещение).
// Без выбранной персонажем цели - false; нулевая дистанция считается дистанцией ближнего боя.
func (c *Classifier) InMeleeRange() bool {
	actor := c.world.LocalActor()
	if actor == nil || !actor.HasTarget() {
		return false
	}
	if _, ok := c.world.LookupByID(actor.TargetObjectID); !ok {
		return false
	}

	distance := c.TargetDistance()
	if distance == 0 {
		return true
	}
	return distance <= config.BaseMeleeRange+c.settings.MeleeRangeOffset()
}

// IsInTargetableRange - грубый предфильтр по дистанции движка (без учёта хитбоксов)
func (c *Classifier) IsInTargetableRange(target *entity.Entity) bool {
	if target == nil || target.RawDistance >= TargetableRange {
		return false
	}
	return true
}

// RangeQuerier - снимок мира с пространственным поиском.
// EntityManager реализует его через сетку ячеек.
type RangeQuerier interface {
	GetEntitiesInRange(center vec.Vec3Float, radius float64) []*entity.Entity
}

// NearbyHostiles возвращает враждебных боевых NPC, центр которых не дальше radius от персонажа игрока
// (плоское расстояние, без хитбоксов). Результат отсортирован по ID.
func (c *Classifier) NearbyHostiles(radius float64) []*entity.Entity {
	actor := c.world.LocalActor()
	if actor == nil || radius < 0 {
		return nil
	}

	var candidates []*entity.Entity
	if rq, ok := c.world.(RangeQuerier); ok {
		candidates = rq.GetEntitiesInRange(actor.Position, radius)
	} else {
		candidates = c.world.EntitiesWhere(func(e *entity.Entity) bool {
			return actor.Position.PlanarDistanceTo(e.Position) <= radius
		})
	}

	hostiles := make([]*entity.Entity, 0, len(candidates))
	for _, e := range candidates {
		if c.IsHostileBattleUnit(e) {
			hostiles = append(hostiles, e)
		}
	}
	return hostiles
}
