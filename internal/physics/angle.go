package physics

import (
	"math"

	"github.com/annel0/combo-targeting/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// Radians переводит градусы в радианы
func Radians(degrees float64) float64 {
	return mgl64.DegToRad(degrees)
}

// Degrees переводит радианы в градусы
func Degrees(radians float64) float64 {
	return mgl64.RadToDeg(radians)
}

// AngleXZ возвращает азимут от точки a к точке b в горизонтальной плоскости.
// Порядок аргументов atan2 (dx, dz) соответствует левосторонней системе координат клиента:
// 0 - направление +Z, π/2 - направление +X.
func AngleXZ(a, b vec.Vec3Float) float64 {
	return math.Atan2(b.X-a.X, b.Z-a.Z)
}

// NormalizeDegrees приводит угол к диапазону [0, 360)
func NormalizeDegrees(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	// -1e-15 + 360 округляется до 360
	if degrees >= 360 {
		degrees -= 360
	}
	return degrees
}
