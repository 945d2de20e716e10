// Package combat содержит производные предикаты над разрешённой целью и персонажем игрока:
// дистанцию, отношение (союзник/враг), прерывание каста, позиционку и сектор относительно цели.
package combat

import (
	"github.com/annel0/combo-targeting/internal/config"
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/annel0/combo-targeting/internal/world/entity"
)

// Settings - внешняя конфигурация классификатора
type Settings interface {
	MeleeRangeOffset() float64
	TemplateRequiresPositional(templateID uint32) bool
	JobRole(jobID uint8) config.Role
}

// TargetSetter принимает запрос на смену цели.
// Запись асинхронна по смыслу: следующее чтение снимка может её ещё не увидеть.
type TargetSetter interface {
	SetTarget(target *entity.Entity)
}

// Classifier вычисляет предикаты по текущему снимку мира.
// Ничего не кэширует: каждый вызов читает снимок заново.
type Classifier struct {
	resolver *targeting.Resolver
	world    targeting.WorldSnapshot
	settings Settings
	setter   TargetSetter
}

// NewClassifier создаёт классификатор поверх Resolver.
// setter может быть nil - тогда команды смены цели игнорируются.
func NewClassifier(resolver *targeting.Resolver, settings Settings, setter TargetSetter) *Classifier {
	return &Classifier{
		resolver: resolver,
		world:    resolver.World(),
		settings: settings,
		setter:   setter,
	}
}

// Resolver возвращает используемый Resolver
func (c *Classifier) Resolver() *targeting.Resolver {
	return c.resolver
}

// CurrentTarget возвращает основную цель или nil
func (c *Classifier) CurrentTarget() *entity.Entity {
	return c.world.CurrentPrimaryTarget()
}

// HasTarget проверяет наличие основной цели
func (c *Classifier) HasTarget() bool {
	return c.CurrentTarget() != nil
}
