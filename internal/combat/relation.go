package combat

import (
	"github.com/annel0/combo-targeting/internal/config"
	"github.com/annel0/combo-targeting/internal/world/entity"
)

// HealthPercent возвращает здоровье сущности в процентах; 0 для отсутствующей сущности,
// не боевого персонажа или нулевого максимума.
func (c *Classifier) HealthPercent(e *entity.Entity) float64 {
	if !e.IsBattleChara() || e.MaxHP == 0 {
		return 0
	}
	return float64(e.CurrentHP) / float64(e.MaxHP) * 100
}

// TargetHealthPercent возвращает здоровье основной цели в процентах
func (c *Classifier) TargetHealthPercent() float64 {
	return c.HealthPercent(c.CurrentTarget())
}

// PlayerHealthPercent возвращает здоровье персонажа игрока в процентах
func (c *Classifier) PlayerHealthPercent() float64 {
	return c.HealthPercent(c.world.LocalActor())
}

// EnemyMaxHP возвращает максимальное здоровье основной цели
func (c *Classifier) EnemyMaxHP() uint32 {
	t := c.CurrentTarget()
	if !t.IsBattleChara() {
		return 0
	}
	return t.MaxHP
}

// EnemyCurrentHP возвращает текущее здоровье основной цели
func (c *Classifier) EnemyCurrentHP() uint32 {
	t := c.CurrentTarget()
	if !t.IsBattleChara() {
		return 0
	}
	return t.CurrentHP
}

// IsHostileBattleUnit проверяет, является ли сущность враждебным боевым NPC
func (c *Classifier) IsHostileBattleUnit(e *entity.Entity) bool {
	return e.IsBattleNpc() && e.SubKind.IsEnemy()
}

// HasBattleTarget проверяет, что основная цель - враждебный боевой NPC
func (c *Classifier) HasBattleTarget() bool {
	return c.IsHostileBattleUnit(c.CurrentTarget())
}

// RoleOf возвращает боевую роль игрока по его профессии; для остальных сущностей RoleUnknown
func (c *Classifier) RoleOf(e *entity.Entity) config.Role {
	if e == nil || e.Kind != entity.ObjectKindPlayer {
		return config.RoleUnknown
	}
	return c.settings.JobRole(e.ClassJob)
}

// PlayerRole возвращает роль персонажа игрока
func (c *Classifier) PlayerRole() config.Role {
	return c.RoleOf(c.world.LocalActor())
}

// IsFriendly проверяет, дружественна ли сущность: игроки и не враждебные боевые NPC (трасты, питомцы).
// При e == nil и fallbackToCurrentTarget проверяется основная цель.
func (c *Classifier) IsFriendly(e *entity.Entity, fallbackToCurrentTarget bool) bool {
	if e == nil {
		if !fallbackToCurrentTarget {
			return false
		}
		if e = c.CurrentTarget(); e == nil {
			return false
		}
	}

	switch e.Kind {
	case entity.ObjectKindPlayer:
		return true
	case entity.ObjectKindBattleNpc:
		return !e.SubKind.IsEnemy()
	default:
		return false
	}
}

// ResolveHealTarget выбирает цель для лечения.
// Порядок: мягкая цель, затем основная (если не только наведение), затем наведение на список группы,
// которое перекрывает найденное ранее. С restrictToMouseoverOnly результат возвращается сразу
// после проверки списка группы, без отката на персонажа игрока.
func (c *Classifier) ResolveHealTarget(checkMouseoverPartyUI, restrictToMouseoverOnly bool) *entity.Entity {
	var healTarget *entity.Entity

	if soft := c.world.SoftTarget(); c.IsFriendly(soft, false) {
		healTarget = soft
	}
	if healTarget == nil && !restrictToMouseoverOnly {
		if current := c.CurrentTarget(); c.IsFriendly(current, false) {
			healTarget = current
		}
	}

	if checkMouseoverPartyUI {
		if uiTarget := c.resolver.UIHoverEntity(); uiTarget != nil && c.IsFriendly(uiTarget, false) {
			healTarget = uiTarget
		}
		if restrictToMouseoverOnly {
			return healTarget
		}
	}

	if healTarget == nil {
		healTarget = c.world.LocalActor()
	}
	return healTarget
}

// CanInterruptEnemy проверяет, что основная цель кастует прерываемое заклинание
func (c *Classifier) CanInterruptEnemy() bool {
	t := c.CurrentTarget()
	if !t.IsBattleChara() {
		return false
	}
	return t.IsCasting && t.IsCastInterruptible
}

// NeedsPositionalCheck проверяет, требует ли враждебная основная цель игры от позиции
func (c *Classifier) NeedsPositionalCheck() bool {
	t := c.CurrentTarget()
	if !c.IsHostileBattleUnit(t) {
		return false
	}
	return c.settings.TemplateRequiresPositional(t.TemplateID)
}
