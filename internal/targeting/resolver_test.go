package targeting

import (
	"errors"
	"testing"

	"github.com/annel0/combo-targeting/internal/world/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNatives имитирует нативный сервис местоимений и списка группы
type fakeNatives struct {
	pronouns map[PronounID]Handle
	ids      map[Handle]entity.ObjectID
	hover    Handle
}

func newFakeNatives() *fakeNatives {
	return &fakeNatives{
		pronouns: make(map[PronounID]Handle),
		ids:      make(map[Handle]entity.ObjectID),
	}
}

// bind связывает местоимение с объектом через новый хэндл
func (f *fakeNatives) bind(p PronounID, id entity.ObjectID) {
	h := Handle(0x1000 + len(f.ids))
	f.ids[h] = id
	f.pronouns[p] = h
}

func (f *fakeNatives) ResolvePronoun(id PronounID) Handle  { return f.pronouns[id] }
func (f *fakeNatives) CurrentUIHoverHandle() Handle        { return f.hover }
func (f *fakeNatives) ObjectIDOf(h Handle) entity.ObjectID { return f.ids[h] }

type recordingObserver struct {
	calls []Selector
	found []bool
}

func (o *recordingObserver) ObserveResolution(sel Selector, found bool) {
	o.calls = append(o.calls, sel)
	o.found = append(o.found, found)
}

func newWorld() *entity.EntityManager {
	em := entity.NewEntityManager()
	em.Upsert(entity.Entity{ID: 1, Kind: entity.ObjectKindPlayer, Name: "Self", TargetObjectID: entity.InvalidObjectID})
	em.Upsert(entity.Entity{ID: 10, Kind: entity.ObjectKindBattleNpc, SubKind: entity.SubKindEnemy, Name: "Boss", TargetObjectID: 2})
	em.Upsert(entity.Entity{ID: 2, Kind: entity.ObjectKindPlayer, Name: "Tank"})
	em.Upsert(entity.Entity{ID: 3, Kind: entity.ObjectKindPlayer, Name: "Healer"})
	em.Upsert(entity.Entity{ID: 4, Kind: entity.ObjectKindBattleNpc, SubKind: entity.SubKindNpcPartyMember, Name: "Trust"})
	em.SetLocalActor(1)
	return em
}

func TestResolve_DirectSlots(t *testing.T) {
	em := newWorld()
	em.SetPrimaryTarget(10)
	em.SetSoftTarget(2)
	em.SetFocusTarget(3)
	em.SetFieldMouseoverTarget(4)
	r := NewResolver(em)

	cases := map[Selector]entity.ObjectID{
		PrimaryTarget:        10,
		SoftTarget:           2,
		FocusTarget:          3,
		FieldMouseoverTarget: 4,
		SelfActor:            1,
	}
	for sel, want := range cases {
		e, ok := r.Resolve(sel)
		require.True(t, ok, "Селектор %s должен разрешиться", sel)
		assert.Equal(t, want, e.ID, "Селектор %s", sel)
	}
}

func TestResolve_UnsetSlotsAreAbsent(t *testing.T) {
	r := NewResolver(entity.NewEntityManager())

	for _, sel := range AllSelectors() {
		e, ok := r.Resolve(sel)
		assert.False(t, ok, "Пустой снимок: селектор %s не должен разрешиться", sel)
		assert.Nil(t, e)
	}
}

func TestResolve_StaleEntityIsAbsent(t *testing.T) {
	em := newWorld()
	em.SetPrimaryTarget(10)
	r := NewResolver(em)

	_, ok := r.Resolve(PrimaryTarget)
	require.True(t, ok)

	em.Despawn(10)
	_, ok = r.Resolve(PrimaryTarget)
	assert.False(t, ok, "Выгруженная сущность должна давать отсутствие цели")
}

func TestResolve_TargetOfTarget(t *testing.T) {
	em := newWorld()
	r := NewResolver(em)

	t.Run("Нет основной цели", func(t *testing.T) {
		_, ok := r.Resolve(TargetOfTarget)
		assert.False(t, ok)
	})

	t.Run("Цель основной цели", func(t *testing.T) {
		em.SetPrimaryTarget(10)
		e, ok := r.Resolve(TargetOfTarget)
		require.True(t, ok)
		assert.Equal(t, entity.ObjectID(2), e.ID)
	})

	t.Run("Сентинел 0xE0000000", func(t *testing.T) {
		em.Upsert(entity.Entity{ID: 11, Kind: entity.ObjectKindBattleNpc, TargetObjectID: 0xE0000000})
		em.SetPrimaryTarget(11)
		_, ok := r.Resolve(TargetOfTarget)
		assert.False(t, ok, "Сентинел означает отсутствие цели")
	})
}

func TestResolve_UIMouseover(t *testing.T) {
	em := newWorld()
	natives := newFakeNatives()

	t.Run("Без сервиса", func(t *testing.T) {
		_, ok := NewResolver(em).Resolve(UIMouseoverTarget)
		assert.False(t, ok)
	})

	r := NewResolver(em, WithPartyUI(natives))

	t.Run("Нулевой хэндл", func(t *testing.T) {
		_, ok := r.Resolve(UIMouseoverTarget)
		assert.False(t, ok)
	})

	t.Run("Хэндл с нулевым id", func(t *testing.T) {
		natives.hover = 0xBEEF
		_, ok := r.Resolve(UIMouseoverTarget)
		assert.False(t, ok, "Объект с id 0 считается отсутствующим")
	})

	t.Run("Член группы под курсором", func(t *testing.T) {
		natives.ids[0xBEEF] = 3
		e, ok := r.Resolve(UIMouseoverTarget)
		require.True(t, ok)
		assert.Equal(t, "Healer", e.Name)
	})
}

func TestResolve_Pronouns(t *testing.T) {
	em := newWorld()
	natives := newFakeNatives()
	natives.bind(1006, 10)
	natives.bind(1084, 10)
	natives.bind(1008, 4)
	natives.bind(44, 2)
	natives.bind(50, 3)
	r := NewResolver(em, WithPronouns(natives), WithPartyUI(natives))

	cases := []struct {
		sel  Selector
		want entity.ObjectID
	}{
		{LastTarget, 10},
		{LastEnemy, 10},
		{LastAttacker, 4},
		{PartySlot2, 2},
		{PartySlot8, 3},
	}
	for _, c := range cases {
		e, ok := r.Resolve(c.sel)
		require.True(t, ok, "Селектор %s", c.sel)
		assert.Equal(t, c.want, e.ID, "Селектор %s", c.sel)
	}

	_, ok := r.Resolve(PartySlot5)
	assert.False(t, ok, "Пустой слот группы не разрешается")

	// Хэндл на выгруженный объект
	natives.bind(46, 999)
	_, ok = r.Resolve(PartySlot4)
	assert.False(t, ok)
}

// pronounsOnly отдаёт хэндлы местоимений, но не умеет определять их идентичность
type pronounsOnly struct {
	handles map[PronounID]Handle
}

func (p pronounsOnly) ResolvePronoun(id PronounID) Handle { return p.handles[id] }

// idTable определяет идентичность хэндлов по таблице
type idTable map[Handle]entity.ObjectID

func (t idTable) ObjectIDOf(h Handle) entity.ObjectID { return t[h] }

func TestResolve_PronounHandleIdentity(t *testing.T) {
	em := newWorld()

	t.Run("Сервис местоимений сам определяет идентичность", func(t *testing.T) {
		natives := newFakeNatives()
		natives.bind(1084, 10)
		r := NewResolver(em, WithPronouns(natives))

		e, ok := r.Resolve(LastEnemy)
		require.True(t, ok, "Без сервиса списка группы местоимения всё равно разрешаются")
		assert.Equal(t, entity.ObjectID(10), e.ID)
	})

	t.Run("Отдельный HandleIdentifier", func(t *testing.T) {
		p := pronounsOnly{handles: map[PronounID]Handle{44: 0x77}}
		r := NewResolver(em, WithPronouns(p), WithHandleIdentifier(idTable{0x77: 2}))

		e, ok := r.Resolve(PartySlot2)
		require.True(t, ok)
		assert.Equal(t, entity.ObjectID(2), e.ID)
	})

	t.Run("Без сервиса идентичности", func(t *testing.T) {
		p := pronounsOnly{handles: map[PronounID]Handle{44: 0x77}}
		r := NewResolver(em, WithPronouns(p))

		_, ok := r.Resolve(PartySlot2)
		assert.False(t, ok, "Хэндл нельзя перевести в id объекта")
	})

	t.Run("Явный HandleIdentifier приоритетнее списка группы", func(t *testing.T) {
		natives := newFakeNatives()
		natives.bind(1006, 3)
		r := NewResolver(em, WithPronouns(natives), WithPartyUI(natives),
			WithHandleIdentifier(idTable{0x1000: 4}))

		e, ok := r.Resolve(LastTarget)
		require.True(t, ok)
		assert.Equal(t, entity.ObjectID(4), e.ID)
	})
}

func TestPronounTable(t *testing.T) {
	want := map[Selector]PronounID{
		LastTarget: 1006, LastEnemy: 1084, LastAttacker: 1008,
		PartySlot2: 44, PartySlot3: 45, PartySlot4: 46, PartySlot5: 47,
		PartySlot6: 48, PartySlot7: 49, PartySlot8: 50,
	}
	for sel, code := range want {
		got, ok := PronounFor(sel)
		require.True(t, ok, "Селектор %s", sel)
		assert.Equal(t, code, got, "Селектор %s", sel)
	}
	_, ok := PronounFor(PrimaryTarget)
	assert.False(t, ok, "Прямые селекторы не используют местоимения")
}

func TestResolve_InvalidSelectorPanics(t *testing.T) {
	r := NewResolver(newWorld())
	assert.Panics(t, func() { r.Resolve(Selector(200)) })
	assert.Panics(t, func() { r.Resolve(selectorCount) })
}

func TestResolve_Observer(t *testing.T) {
	em := newWorld()
	em.SetPrimaryTarget(10)
	obs := &recordingObserver{}
	r := NewResolver(em, WithObserver(obs))

	r.Resolve(PrimaryTarget)
	r.Resolve(FocusTarget)

	assert.Equal(t, []Selector{PrimaryTarget, FocusTarget}, obs.calls)
	assert.Equal(t, []bool{true, false}, obs.found)
}

func TestPartyIndex(t *testing.T) {
	em := newWorld()
	natives := newFakeNatives()
	natives.bind(45, 3) // p3
	natives.bind(47, 2) // p5
	natives.bind(49, 2) // p7 - тот же объект
	r := NewResolver(em, WithPronouns(natives), WithPartyUI(natives))

	assert.Equal(t, 3, r.PartyIndex(3))
	assert.Equal(t, 5, r.PartyIndex(2), "Побеждает слот с меньшим номером")
	assert.Equal(t, 1, r.PartyIndex(4), "Нет совпадений - слот самого игрока")
	assert.Equal(t, 1, r.PartyIndex(1))
}

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector("Target_Of_Target")
	require.NoError(t, err)
	assert.Equal(t, TargetOfTarget, sel)

	_, err = ParseSelector("p9")
	assert.True(t, errors.Is(err, ErrUnknownSelector))

	assert.Len(t, AllSelectors(), 17)
	assert.Equal(t, "selector(99)", Selector(99).String())

	slot, ok := PartySlot(4)
	require.True(t, ok)
	assert.Equal(t, PartySlot4, slot)
	_, ok = PartySlot(1)
	assert.False(t, ok)
}
