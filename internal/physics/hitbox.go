package physics

import (
	"math"

	"github.com/annel0/combo-targeting/internal/vec"
)

// CircleCollider описывает круглый хитбокс сущности в горизонтальной плоскости
type CircleCollider struct {
	Center vec.Vec3Float // Центр хитбокса (высота игнорируется)
	Radius float64       // Радиус хитбокса
}

// NewCircleCollider создаёт коллайдер с указанным центром и радиусом
func NewCircleCollider(center vec.Vec3Float, radius float64) CircleCollider {
	return CircleCollider{Center: center, Radius: radius}
}

// EdgeDistance возвращает боевую дистанцию между двумя хитбоксами:
// плоское расстояние между центрами минус оба радиуса, но не меньше нуля.
func EdgeDistance(a, b CircleCollider) float64 {
	d := a.Center.PlanarDistanceTo(b.Center) - a.Radius - b.Radius
	return math.Max(0, d)
}
