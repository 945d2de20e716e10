package scenario

import (
	"fmt"

	"github.com/annel0/combo-targeting/internal/logging"
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/annel0/combo-targeting/internal/vec"
	"github.com/annel0/combo-targeting/internal/world/entity"
	"github.com/google/uuid"
)

// handleBase - первый выдаваемый дескриптор; нулевой зарезервирован под NilHandle
const handleBase targeting.Handle = 0x1000

// Natives - статическая реализация местоимений и наведения на список группы.
// Выдаёт дескрипторы сущностям сценария и переводит их обратно в id объекта.
type Natives struct {
	pronouns map[targeting.PronounID]targeting.Handle
	objects  map[targeting.Handle]entity.ObjectID
	handles  map[entity.ObjectID]targeting.Handle
	hover    targeting.Handle
}

func newNatives() *Natives {
	return &Natives{
		pronouns: make(map[targeting.PronounID]targeting.Handle),
		objects:  make(map[targeting.Handle]entity.ObjectID),
		handles:  make(map[entity.ObjectID]targeting.Handle),
	}
}

// handleFor возвращает дескриптор объекта, выдавая новый при первом обращении
func (n *Natives) handleFor(id entity.ObjectID) targeting.Handle {
	if h, ok := n.handles[id]; ok {
		return h
	}
	h := handleBase + targeting.Handle(len(n.handles))
	n.handles[id] = h
	n.objects[h] = id
	return h
}

// ResolvePronoun возвращает дескриптор объекта по местоимению
func (n *Natives) ResolvePronoun(id targeting.PronounID) targeting.Handle {
	return n.pronouns[id]
}

// CurrentUIHoverHandle возвращает дескриптор объекта под курсором в списке группы
func (n *Natives) CurrentUIHoverHandle() targeting.Handle {
	return n.hover
}

// ObjectIDOf переводит дескриптор в id объекта; неизвестный дескриптор даёт NoObjectID
func (n *Natives) ObjectIDOf(h targeting.Handle) entity.ObjectID {
	return n.objects[h]
}

// Fixture - собранный снимок мира
type Fixture struct {
	RunID   uuid.UUID
	Name    string
	World   *entity.EntityManager
	Natives *Natives
}

// NewResolver создаёт Resolver поверх снимка со всеми сервисами сценария
func (f *Fixture) NewResolver(opts ...targeting.Option) *targeting.Resolver {
	base := []targeting.Option{
		targeting.WithPronouns(f.Natives),
		targeting.WithPartyUI(f.Natives),
		targeting.WithHandleIdentifier(f.Natives),
	}
	return targeting.NewResolver(f.World, append(base, opts...)...)
}

// Build собирает снимок мира из сценария.
// Слоты, местоимения и наведение обязаны ссылаться на описанные сущности (иначе ErrUnknownEntity);
// устаревшие ссылки моделируются списком despawned.
func (sc *Scenario) Build() (*Fixture, error) {
	known := make(map[entity.ObjectID]EntitySpec, len(sc.Entities))
	for _, es := range sc.Entities {
		if !es.ID.Valid() {
			return nil, fmt.Errorf("недопустимый id сущности %d", es.ID)
		}
		if _, dup := known[es.ID]; dup {
			return nil, fmt.Errorf("повторный id сущности %d", es.ID)
		}
		known[es.ID] = es
	}

	check := func(what string, id entity.ObjectID) error {
		if id == entity.NoObjectID {
			return nil
		}
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%s → %d: %w", what, id, ErrUnknownEntity)
		}
		return nil
	}

	var origin *vec.Vec3Float
	if err := check("slots.self", sc.Slots.Self); err != nil {
		return nil, err
	}
	if self, ok := known[sc.Slots.Self]; ok {
		p := self.Position.vec()
		origin = &p
	}

	world := entity.NewEntityManager()
	for _, es := range sc.Entities {
		e, err := es.toEntity(origin)
		if err != nil {
			return nil, err
		}
		world.Upsert(e)
	}

	slots := []struct {
		name string
		id   entity.ObjectID
		set  func(entity.ObjectID)
	}{
		{"slots.self", sc.Slots.Self, world.SetLocalActor},
		{"slots.target", sc.Slots.Target, world.SetPrimaryTarget},
		{"slots.soft_target", sc.Slots.SoftTarget, world.SetSoftTarget},
		{"slots.focus_target", sc.Slots.FocusTarget, world.SetFocusTarget},
		{"slots.field_mouseover", sc.Slots.FieldMouseover, world.SetFieldMouseoverTarget},
	}
	for _, s := range slots {
		if err := check(s.name, s.id); err != nil {
			return nil, err
		}
		s.set(s.id)
	}

	natives := newNatives()
	for name, id := range sc.Pronouns {
		sel, err := targeting.ParseSelector(name)
		if err != nil {
			return nil, fmt.Errorf("pronouns: %w", err)
		}
		pronoun, ok := targeting.PronounFor(sel)
		if !ok {
			return nil, fmt.Errorf("pronouns: селектор %s не разрешается через местоимение", sel)
		}
		if err := check("pronouns."+name, id); err != nil {
			return nil, err
		}
		if id != entity.NoObjectID {
			natives.pronouns[pronoun] = natives.handleFor(id)
		}
	}

	if err := check("ui_hover", sc.UIHover); err != nil {
		return nil, err
	}
	if sc.UIHover != entity.NoObjectID {
		natives.hover = natives.handleFor(sc.UIHover)
	}

	for _, id := range sc.Despawned {
		if !world.Despawn(id) {
			return nil, fmt.Errorf("despawned → %d: %w", id, ErrUnknownEntity)
		}
	}

	f := &Fixture{
		RunID:   uuid.New(),
		Name:    sc.Name,
		World:   world,
		Natives: natives,
	}
	logging.GetScenarioLogger().Info("Сценарий %q собран: %d сущностей, run=%s", sc.Name, world.Count(), f.RunID)
	return f, nil
}
