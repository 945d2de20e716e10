package vec

import "github.com/go-gl/mathgl/mgl64"

// Vec2Float представляет 2D координаты с плавающей точкой.
// Для сущностей мира это проекция на горизонтальную плоскость: X -> X, Y -> Z.
type Vec2Float struct {
	X, Y float64
}

// mgl переводит вектор в представление mathgl
func (v Vec2Float) mgl() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// Sub вычитает вектор
func (v Vec2Float) Sub(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X - other.X, Y: v.Y - other.Y}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return v.mgl().Len()
}

// DistanceTo вычисляет евклидово расстояние до другой точки
func (v Vec2Float) DistanceTo(other Vec2Float) float64 {
	return v.Sub(other).Length()
}
