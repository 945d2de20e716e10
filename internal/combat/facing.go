package combat

import (
	"math"

	"github.com/annel0/combo-targeting/internal/physics"
	"github.com/annel0/combo-targeting/internal/world/entity"
)

// FacingDegreesTo возвращает угол игрока относительно взгляда сущности в градусах [0, 360).
// NaN - если сущности или персонажа нет, либо сущность не боевой NPC.
func (c *Classifier) FacingDegreesTo(target *entity.Entity) float64 {
	actor := c.world.LocalActor()
	if actor == nil || !target.IsBattleNpc() {
		return math.NaN()
	}
	return physics.FacingDegrees(target.Position, target.Rotation, actor.Position)
}

// FacingArcTo возвращает сектор игрока относительно произвольной сущности
func (c *Classifier) FacingArcTo(target *entity.Entity) physics.FacingArc {
	actor := c.world.LocalActor()
	if actor == nil || !target.IsBattleNpc() {
		return physics.ArcNone
	}
	return physics.ClassifyFacing(target.Position, target.Rotation, actor.Position)
}

func (c *Classifier) facingDegrees() float64 {
	return c.FacingDegreesTo(c.CurrentTarget())
}

// FacingArc возвращает сектор игрока относительно основной цели (ArcNone, если его нельзя определить)
func (c *Classifier) FacingArc() physics.FacingArc {
	return physics.ArcAt(c.facingDegrees())
}

// FacingArcs возвращает все секторы, в которых находится игрок (два - на границе)
func (c *Classifier) FacingArcs() []physics.FacingArc {
	return physics.ArcsAt(c.facingDegrees())
}

// OnTargetsRear проверяет, находится ли игрок в тылу цели [135°, 225°]
func (c *Classifier) OnTargetsRear() bool {
	return physics.InRear(c.facingDegrees())
}

// OnTargetsFlank проверяет, находится ли игрок на фланге цели [45°, 135°] ∪ [225°, 315°]
func (c *Classifier) OnTargetsFlank() bool {
	return physics.InFlank(c.facingDegrees())
}
