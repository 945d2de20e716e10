package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
combat:
  melee_offset: 1.5
positionals:
  templates:
    541: {omnidirectional: false}
    8345: {omnidirectional: true}
inspector:
  port: 9100
telemetry:
  enabled: true
`

func TestParse_Sample(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.MeleeRangeOffset())
	assert.Equal(t, 4.5, cfg.MeleeRange())
	assert.True(t, cfg.TemplateRequiresPositional(541), "Шаблон из таблицы требует позиционки")
	assert.False(t, cfg.TemplateRequiresPositional(8345), "Всенаправленный шаблон не требует позиционки")
	assert.False(t, cfg.TemplateRequiresPositional(1), "Шаблон вне таблицы не требует позиционки")
	assert.Equal(t, 9100, cfg.Inspector.GetPort())
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "combo-targeting", cfg.Telemetry.ServiceName, "Незаданные поля берутся из значений по умолчанию")
	assert.Equal(t, RoleHealer, cfg.Jobs.RoleOf(24))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("combat:\n  melee_offset: -5\n"))
	assert.True(t, errors.Is(err, ErrInvalidConfig), "Отрицательная дальность ближнего боя недопустима")

	_, err = Parse([]byte("combat: [1, 2"))
	assert.Error(t, err)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "combo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.MeleeRangeOffset())

	t.Setenv("COMBO_CONFIG", path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Inspector.Port)

	t.Setenv("COMBO_CONFIG", "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.MeleeRangeOffset(), "Без файла используются значения по умолчанию")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestInspectorPort_EnvFallback(t *testing.T) {
	var ic InspectorConfig
	t.Setenv("COMBO_INSPECTOR_PORT", "")
	assert.Equal(t, 8099, ic.GetPort())

	t.Setenv("COMBO_INSPECTOR_PORT", "7000")
	assert.Equal(t, 7000, ic.GetPort())

	ic.Port = 7100
	assert.Equal(t, 7100, ic.GetPort(), "Значение из конфига приоритетнее ENV")
}

func TestJobs_RoleOf(t *testing.T) {
	jobs := DefaultJobs()
	assert.Equal(t, RoleMelee, jobs.RoleOf(22), "DRG")
	assert.Equal(t, RoleMelee, jobs.RoleOf(4), "LNC без камня профессии")
	assert.Equal(t, RoleTank, jobs.RoleOf(37), "GNB")
	assert.Equal(t, RoleRanged, jobs.RoleOf(36), "BLU")
	assert.Equal(t, RoleUnknown, jobs.RoleOf(8), "Ремесленник не входит в боевые группы")
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3.5, cfg.MeleeRange())
	assert.True(t, cfg.TemplateRequiresPositional(1680))
	assert.False(t, cfg.TemplateRequiresPositional(541), "Всенаправленный шаблон")
	assert.Equal(t, "localhost:4318", cfg.Telemetry.Endpoint)
	assert.NotEmpty(t, cfg.Jobs.Melee, "Группы профессий по умолчанию сохраняются")
}
