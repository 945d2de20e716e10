// Package scenario загружает YAML-описания снимка мира (сущности, слоты целей, таблицу местоимений,
// наведение на список группы) и собирает из них EntityManager и сервисы для Resolver.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/annel0/combo-targeting/internal/physics"
	"github.com/annel0/combo-targeting/internal/vec"
	"github.com/annel0/combo-targeting/internal/world/entity"
	"gopkg.in/yaml.v3"
)

// ErrUnknownEntity возвращается, если слот, местоимение или наведение ссылаются на отсутствующую сущность
var ErrUnknownEntity = errors.New("ссылка на неизвестную сущность")

// Scenario - описание одного снимка мира
type Scenario struct {
	Name      string                     `yaml:"name"`
	Entities  []EntitySpec               `yaml:"entities"`
	Slots     SlotSpec                   `yaml:"slots"`
	Pronouns  map[string]entity.ObjectID `yaml:"pronouns"` // имя селектора → id объекта
	UIHover   entity.ObjectID            `yaml:"ui_hover"`
	Despawned []entity.ObjectID          `yaml:"despawned"` // удаляются после назначения слотов
}

// Position - координаты в мире
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// EntitySpec - одна сущность сценария
type EntitySpec struct {
	ID            entity.ObjectID `yaml:"id"`
	Kind          string          `yaml:"kind"`
	SubKind       string          `yaml:"subkind"`
	TemplateID    uint32          `yaml:"template_id"`
	Job           uint8           `yaml:"job"`
	Name          string          `yaml:"name"`
	Position      Position        `yaml:"position"`
	Rotation      float64         `yaml:"rotation"`     // радианы
	RotationDeg   *float64        `yaml:"rotation_deg"` // градусы, перекрывает rotation
	HitboxRadius  float64         `yaml:"hitbox_radius"`
	HP            uint32          `yaml:"hp"`
	MaxHP         uint32          `yaml:"max_hp"`
	Casting       bool            `yaml:"casting"`
	Interruptible bool            `yaml:"interruptible"`
	Target        entity.ObjectID `yaml:"target"`       // 0 - нет цели
	RawDistance   *float64        `yaml:"raw_distance"` // не задано - считается от персонажа игрока
}

// SlotSpec - слоты целей клиента
type SlotSpec struct {
	Self           entity.ObjectID `yaml:"self"`
	Target         entity.ObjectID `yaml:"target"`
	SoftTarget     entity.ObjectID `yaml:"soft_target"`
	FocusTarget    entity.ObjectID `yaml:"focus_target"`
	FieldMouseover entity.ObjectID `yaml:"field_mouseover"`
}

// Load читает сценарий из YAML-файла
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сценария %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("сценарий %s: %w", path, err)
	}
	return sc, nil
}

// Parse разбирает сценарий из YAML
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("ошибка разбора YAML: %w", err)
	}
	return &sc, nil
}

func (p Position) vec() vec.Vec3Float {
	return vec.Vec3Float{X: p.X, Y: p.Y, Z: p.Z}
}

// toEntity переводит описание в снимок сущности; RawDistance считается от origin, если не задана
func (s EntitySpec) toEntity(origin *vec.Vec3Float) (entity.Entity, error) {
	kind, err := entity.ParseObjectKind(s.Kind)
	if err != nil {
		return entity.Entity{}, fmt.Errorf("сущность %d: %w", s.ID, err)
	}
	subKind, err := entity.ParseSubKind(s.SubKind)
	if err != nil {
		return entity.Entity{}, fmt.Errorf("сущность %d: %w", s.ID, err)
	}

	targetID := s.Target
	if targetID == entity.NoObjectID {
		targetID = entity.InvalidObjectID
	}

	e := entity.Entity{
		ID:                  s.ID,
		Kind:                kind,
		SubKind:             subKind,
		TemplateID:          s.TemplateID,
		ClassJob:            s.Job,
		Name:                s.Name,
		Position:            s.Position.vec(),
		Rotation:            s.Rotation,
		HitboxRadius:        s.HitboxRadius,
		CurrentHP:           s.HP,
		MaxHP:               s.MaxHP,
		IsCasting:           s.Casting,
		IsCastInterruptible: s.Interruptible,
		TargetObjectID:      targetID,
	}
	if s.RotationDeg != nil {
		e.Rotation = physics.Radians(*s.RotationDeg)
	}
	switch {
	case s.RawDistance != nil:
		e.RawDistance = *s.RawDistance
	case origin != nil:
		e.RawDistance = origin.DistanceTo(e.Position)
	}
	return e, nil
}
