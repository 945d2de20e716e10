package config

// Role - боевая роль профессии
type Role string

const (
	RoleUnknown Role = ""
	RoleMelee   Role = "melee"
	RoleRanged  Role = "ranged"
	RoleTank    Role = "tank"
	RoleHealer  Role = "healer"
)

// DefaultJobs возвращает стандартные группы: id профессий и базовых классов (без камня профессии)
func DefaultJobs() JobsConfig {
	return JobsConfig{
		// DRG/LNC, MNK/PGL, NIN/ROG, RPR, SAM, VPR
		Melee: []uint8{22, 4, 20, 2, 30, 29, 39, 34, 41},
		// BLM/THM, BRD/ARC, SMN/ACN, MCH, RDM, DNC, BLU, PCT
		Ranged: []uint8{25, 7, 23, 5, 27, 26, 31, 35, 38, 36, 42},
		// PLD/GLA, WAR/MRD, DRK, GNB
		Tank: []uint8{19, 1, 21, 3, 32, 37},
		// WHM/CNJ, SCH, AST, SGE
		Healer: []uint8{24, 6, 28, 33, 40},
	}
}

// RoleOf возвращает роль профессии по её id
func (j JobsConfig) RoleOf(jobID uint8) Role {
	groups := []struct {
		role Role
		ids  []uint8
	}{
		{RoleMelee, j.Melee},
		{RoleRanged, j.Ranged},
		{RoleTank, j.Tank},
		{RoleHealer, j.Healer},
	}
	for _, g := range groups {
		for _, id := range g.ids {
			if id == jobID {
				return g.role
			}
		}
	}
	return RoleUnknown
}
