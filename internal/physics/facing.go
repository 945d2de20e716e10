package physics

import "github.com/annel0/combo-targeting/internal/vec"

// FacingArc - один из четырёх секторов по 90° вокруг цели относительно её взгляда
type FacingArc uint8

const (
	ArcNone FacingArc = iota
	ArcFront
	ArcRear
	ArcLeftFlank
	ArcRightFlank
)

// String возвращает строковое представление сектора
func (a FacingArc) String() string {
	switch a {
	case ArcFront:
		return "front"
	case ArcRear:
		return "rear"
	case ArcLeftFlank:
		return "left_flank"
	case ArcRightFlank:
		return "right_flank"
	default:
		return "none"
	}
}

// Границы секторов в градусах. Границы включительные с обеих сторон:
// на 45/135/225/315 наблюдатель принадлежит сразу двум соседним секторам,
// так же как в игровой механике.
const (
	flankLeftFrom  = 45.0
	rearFrom       = 135.0
	flankRightFrom = 225.0
	frontFrom      = 315.0
)

// FacingDegrees возвращает угол наблюдателя относительно взгляда цели в диапазоне [0, 360)
func FacingDegrees(targetPos vec.Vec3Float, targetRotation float64, observerPos vec.Vec3Float) float64 {
	angle := AngleXZ(targetPos, observerPos) - targetRotation
	return NormalizeDegrees(Degrees(angle))
}

// InLeftFlank проверяет попадание в левый фланг [45, 135]
func InLeftFlank(deg float64) bool {
	return deg >= flankLeftFrom && deg <= rearFrom
}

// InRear проверяет попадание в тыл [135, 225]
func InRear(deg float64) bool {
	return deg >= rearFrom && deg <= flankRightFrom
}

// InRightFlank проверяет попадание в правый фланг [225, 315]
func InRightFlank(deg float64) bool {
	return deg >= flankRightFrom && deg <= frontFrom
}

// InFront проверяет попадание во фронт [315, 360) ∪ [0, 45]
func InFront(deg float64) bool {
	return deg >= frontFrom || deg <= flankLeftFrom
}

// InFlank проверяет попадание в любой из флангов
func InFlank(deg float64) bool {
	return InLeftFlank(deg) || InRightFlank(deg)
}

// arcOrder задаёт порядок проверки секторов для ArcAt
var arcOrder = [...]struct {
	arc FacingArc
	in  func(float64) bool
}{
	{ArcLeftFlank, InLeftFlank},
	{ArcRear, InRear},
	{ArcRightFlank, InRightFlank},
	{ArcFront, InFront},
}

// ArcAt возвращает один сектор для угла; на границе побеждает первый сектор
// в порядке левый фланг, тыл, правый фланг, фронт.
func ArcAt(deg float64) FacingArc {
	for _, c := range arcOrder {
		if c.in(deg) {
			return c.arc
		}
	}
	return ArcNone
}

// ArcsAt возвращает все секторы, содержащие угол (два - на границе)
func ArcsAt(deg float64) []FacingArc {
	arcs := make([]FacingArc, 0, 2)
	for _, c := range arcOrder {
		if c.in(deg) {
			arcs = append(arcs, c.arc)
		}
	}
	return arcs
}

// ClassifyFacing определяет сектор наблюдателя относительно цели
func ClassifyFacing(targetPos vec.Vec3Float, targetRotation float64, observerPos vec.Vec3Float) FacingArc {
	return ArcAt(FacingDegrees(targetPos, targetRotation, observerPos))
}
