package targeting

import "github.com/annel0/combo-targeting/internal/world/entity"

// Handle - непрозрачная ссылка на нативный объект клиента.
// Сравнивать хэндлы между собой нельзя: идентичность определяется только через ObjectIDOf.
type Handle uintptr

// NilHandle - отсутствующий нативный объект
const NilHandle Handle = 0

// WorldSnapshot - представление загруженных сущностей только для чтения.
// Методы слотов возвращают nil, если слот пуст или сущность уже выгружена.
type WorldSnapshot interface {
	CurrentPrimaryTarget() *entity.Entity
	SoftTarget() *entity.Entity
	FocusTarget() *entity.Entity
	FieldMouseoverTarget() *entity.Entity
	LocalActor() *entity.Entity
	LookupByID(id entity.ObjectID) (*entity.Entity, bool)
	EntitiesWhere(pred func(*entity.Entity) bool) []*entity.Entity
}

// PronounResolver разрешает код местоимения в нативный объект
type PronounResolver interface {
	ResolvePronoun(id PronounID) Handle
}

// HandleIdentifier читает идентификатор объекта из нативного хэндла
type HandleIdentifier interface {
	ObjectIDOf(h Handle) entity.ObjectID
}

// PartyUIHoverService отдаёт объект под курсором в списке группы.
// Если отдельный HandleIdentifier не задан, тот же сервис определяет идентичность хэндлов местоимений.
type PartyUIHoverService interface {
	HandleIdentifier
	CurrentUIHoverHandle() Handle
}
