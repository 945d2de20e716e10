package vec

import "github.com/go-gl/mathgl/mgl64"

// Vec3Float представляет позицию в мире.
// Y - вертикальная ось, горизонтальная плоскость образована осями X и Z.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// FromMgl создаёт Vec3Float из вектора mathgl
func FromMgl(v mgl64.Vec3) Vec3Float {
	return Vec3Float{X: v[0], Y: v[1], Z: v[2]}
}

// Mgl возвращает вектор в представлении mathgl
func (v Vec3Float) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// XZ проецирует позицию на горизонтальную плоскость, отбрасывая высоту
func (v Vec3Float) XZ() Vec2Float {
	return Vec2Float{X: v.X, Y: v.Z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return FromMgl(v.Mgl().Sub(other.Mgl()))
}

// DistanceTo возвращает полное трёхмерное расстояние до другой точки
func (v Vec3Float) DistanceTo(other Vec3Float) float64 {
	return v.Sub(other).Mgl().Len()
}

// PlanarDistanceTo возвращает расстояние в горизонтальной плоскости (без учёта высоты)
func (v Vec3Float) PlanarDistanceTo(other Vec3Float) float64 {
	return v.XZ().DistanceTo(other.XZ())
}
