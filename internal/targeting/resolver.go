package targeting

import (
	"github.com/annel0/combo-targeting/internal/logging"
	"github.com/annel0/combo-targeting/internal/world/entity"
)

// Observer получает результат каждого разрешения селектора
type Observer interface {
	ObserveResolution(sel Selector, found bool)
}

// Resolver разрешает селекторы в сущности текущего снимка мира.
// Состояния между вызовами не хранит: каждый вызов читает снимок заново.
type Resolver struct {
	world    WorldSnapshot
	pronouns PronounResolver
	hover    PartyUIHoverService
	identity HandleIdentifier
	observer Observer
}

// Option настраивает Resolver
type Option func(*Resolver)

// WithPronouns подключает сервис разрешения местоимений
func WithPronouns(p PronounResolver) Option {
	return func(r *Resolver) { r.pronouns = p }
}

// WithPartyUI подключает сервис наведения на список группы
func WithPartyUI(h PartyUIHoverService) Option {
	return func(r *Resolver) { r.hover = h }
}

// WithHandleIdentifier задаёт сервис, переводящий хэндлы в id объектов.
// Без него используется сервис списка группы, а затем сервис местоимений, если он это умеет.
func WithHandleIdentifier(h HandleIdentifier) Option {
	return func(r *Resolver) { r.identity = h }
}

// WithObserver подключает наблюдателя за разрешениями (например, метрики)
func WithObserver(o Observer) Option {
	return func(r *Resolver) { r.observer = o }
}

// NewResolver создаёт Resolver поверх снимка мира
func NewResolver(world WorldSnapshot, opts ...Option) *Resolver {
	r := &Resolver{world: world}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// World возвращает снимок мира, с которым работает Resolver
func (r *Resolver) World() WorldSnapshot {
	return r.world
}

// Resolve возвращает сущность для селектора.
// Отсутствие цели - штатный результат (nil, false), а не ошибка.
// Селектор вне закрытого набора вызывает панику.
func (r *Resolver) Resolve(sel Selector) (*entity.Entity, bool) {
	mustBeValid(sel)

	e := r.resolve(sel)
	if r.observer != nil {
		r.observer.ObserveResolution(sel, e != nil)
	}
	return e, e != nil
}

func (r *Resolver) resolve(sel Selector) *entity.Entity {
	switch sel {
	case PrimaryTarget:
		return r.world.CurrentPrimaryTarget()
	case SoftTarget:
		return r.world.SoftTarget()
	case FocusTarget:
		return r.world.FocusTarget()
	case FieldMouseoverTarget:
		return r.world.FieldMouseoverTarget()
	case UIMouseoverTarget:
		return r.UIHoverEntity()
	case TargetOfTarget:
		return r.targetOfTarget()
	case SelfActor:
		return r.world.LocalActor()
	case LastTarget, LastEnemy, LastAttacker,
		PartySlot2, PartySlot3, PartySlot4, PartySlot5, PartySlot6, PartySlot7, PartySlot8:
		return r.fromPronoun(pronounBySelector[sel])
	default:
		mustBeValid(sel)
		return nil
	}
}

// targetOfTarget разрешает цель основной цели; сентинел означает "нет цели"
func (r *Resolver) targetOfTarget() *entity.Entity {
	primary := r.world.CurrentPrimaryTarget()
	if primary == nil || primary.TargetObjectID == entity.InvalidObjectID {
		return nil
	}
	e, _ := r.world.LookupByID(primary.TargetObjectID)
	return e
}

// UIHoverEntity возвращает сущность под курсором в списке группы
func (r *Resolver) UIHoverEntity() *entity.Entity {
	if r.hover == nil {
		return nil
	}
	return r.fromHandle(r.hover.CurrentUIHoverHandle())
}

func (r *Resolver) fromPronoun(id PronounID) *entity.Entity {
	if r.pronouns == nil {
		return nil
	}
	return r.fromHandle(r.pronouns.ResolvePronoun(id))
}

// identifier возвращает сервис идентичности хэндлов или nil
func (r *Resolver) identifier() HandleIdentifier {
	switch {
	case r.identity != nil:
		return r.identity
	case r.hover != nil:
		return r.hover
	}
	if hi, ok := r.pronouns.(HandleIdentifier); ok {
		return hi
	}
	return nil
}

// fromHandle переводит нативный хэндл в сущность снимка через числовой id
func (r *Resolver) fromHandle(h Handle) *entity.Entity {
	ident := r.identifier()
	if h == NilHandle || ident == nil {
		return nil
	}
	id := ident.ObjectIDOf(h)
	if id == entity.NoObjectID {
		return nil
	}
	e, ok := r.world.LookupByID(id)
	if !ok {
		logging.Trace("targeting: хэндл %#x указывает на отсутствующий объект %d", uintptr(h), id)
		return nil
	}
	return e
}
