package combat

import (
	"github.com/annel0/combo-targeting/internal/logging"
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/annel0/combo-targeting/internal/world/entity"
)

// SetTarget отправляет запрос на смену основной цели без подтверждения
func (c *Classifier) SetTarget(target *entity.Entity) {
	if c.setter == nil {
		return
	}
	logging.LogTargetChange(c.CurrentTarget(), target)
	c.setter.SetTarget(target)
}

// TargetObject выбирает сущность целью, если она в пределах досягаемости
func (c *Classifier) TargetObject(target *entity.Entity) bool {
	if !c.IsInTargetableRange(target) {
		return false
	}
	c.SetTarget(target)
	return true
}

// TargetSelector разрешает селектор и выбирает результат целью, если он в пределах досягаемости
func (c *Classifier) TargetSelector(sel targeting.Selector) bool {
	target, ok := c.resolver.Resolve(sel)
	if !ok {
		return false
	}
	return c.TargetObject(target)
}
