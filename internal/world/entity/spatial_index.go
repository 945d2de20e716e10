package entity

import (
	"math"

	"github.com/annel0/combo-targeting/internal/vec"
)

const (
	// defaultCellSize - размер ячейки сетки в ялмах
	defaultCellSize = 16.0
	// maxCellsPerEntity - предел ячеек на сущность; хитбоксы крупнее хранятся отдельным списком
	maxCellsPerEntity = 64
)

// cellKey - ключ ячейки сетки в плоскости XZ
type cellKey struct {
	x, z int
}

// spatialIndex - сетка ячеек XZ для поиска сущностей по дистанции.
// Сущность попадает во все ячейки, которые покрывает её хитбокс.
// Если ячеек больше maxCellsPerEntity, сущность попадает в oversized
// и возвращается любым запросом candidates.
// Синхронизацию обеспечивает EntityManager.
type spatialIndex struct {
	cellSize  float64
	cells     map[cellKey]map[ObjectID]struct{}
	occupied  map[ObjectID][]cellKey
	oversized map[ObjectID]struct{}
}

func newSpatialIndex(cellSize float64) *spatialIndex {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &spatialIndex{
		cellSize:  cellSize,
		cells:     make(map[cellKey]map[ObjectID]struct{}),
		occupied:  make(map[ObjectID][]cellKey),
		oversized: make(map[ObjectID]struct{}),
	}
}

func (si *spatialIndex) cellOf(x, z float64) cellKey {
	return cellKey{
		x: int(math.Floor(x / si.cellSize)),
		z: int(math.Floor(z / si.cellSize)),
	}
}

// cellsFor возвращает ячейки, покрываемые квадратом со стороной 2*radius вокруг center
func (si *spatialIndex) cellsFor(center vec.Vec3Float, radius float64) []cellKey {
	lo := si.cellOf(center.X-radius, center.Z-radius)
	hi := si.cellOf(center.X+radius, center.Z+radius)

	keys := make([]cellKey, 0, (hi.x-lo.x+1)*(hi.z-lo.z+1))
	for x := lo.x; x <= hi.x; x++ {
		for z := lo.z; z <= hi.z; z++ {
			keys = append(keys, cellKey{x, z})
		}
	}
	return keys
}

// update переносит сущность в ячейки по её текущей позиции
func (si *spatialIndex) update(e *Entity) {
	si.remove(e.ID)

	radius := math.Max(e.HitboxRadius, 0)
	if si.cellSpan(e.Position, radius) > maxCellsPerEntity {
		si.oversized[e.ID] = struct{}{}
		return
	}

	keys := si.cellsFor(e.Position, radius)
	for _, key := range keys {
		cell, ok := si.cells[key]
		if !ok {
			cell = make(map[ObjectID]struct{})
			si.cells[key] = cell
		}
		cell[e.ID] = struct{}{}
	}
	si.occupied[e.ID] = keys
}

// remove убирает сущность из всех ячеек; пустые ячейки удаляются
func (si *spatialIndex) remove(id ObjectID) {
	for _, key := range si.occupied[id] {
		cell := si.cells[key]
		delete(cell, id)
		if len(cell) == 0 {
			delete(si.cells, key)
		}
	}
	delete(si.occupied, id)
	delete(si.oversized, id)
}

// cellSpan - число ячеек, которые придётся просмотреть для круга
func (si *spatialIndex) cellSpan(center vec.Vec3Float, radius float64) float64 {
	lo := si.cellOf(center.X-radius, center.Z-radius)
	hi := si.cellOf(center.X+radius, center.Z+radius)
	return float64(hi.x-lo.x+1) * float64(hi.z-lo.z+1)
}

// candidates возвращает id сущностей из ячеек, пересекающих круг; точную проверку делает вызывающий
func (si *spatialIndex) candidates(center vec.Vec3Float, radius float64) map[ObjectID]struct{} {
	found := make(map[ObjectID]struct{}, len(si.oversized))
	for id := range si.oversized {
		found[id] = struct{}{}
	}
	for _, key := range si.cellsFor(center, radius) {
		for id := range si.cells[key] {
			found[id] = struct{}{}
		}
	}
	return found
}

// cellCount - число непустых ячеек
func (si *spatialIndex) cellCount() int {
	return len(si.cells)
}
