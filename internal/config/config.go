package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("некорректная конфигурация")

// Базовая дальность ближнего боя в ялмах (без пользовательского смещения)
const BaseMeleeRange = 3.0

// Config корневая структура конфигурации.
// После Load конфигурация считается неизменяемой и передаётся по указателю.
type Config struct {
	Combat      CombatConfig     `yaml:"combat"`
	Positionals PositionalConfig `yaml:"positionals"`
	Jobs        JobsConfig       `yaml:"jobs"`
	Inspector   InspectorConfig  `yaml:"inspector"`
	Telemetry   TelemetryConfig  `yaml:"telemetry"`
	Logging     LoggingConfig    `yaml:"logging"`
}

type CombatConfig struct {
	MeleeOffset float64 `yaml:"melee_offset"` // Добавка к дальности ближнего боя, может быть отрицательной
}

// PositionalConfig - таблица шаблонов NPC, для которых известна механика позиционных атак
type PositionalConfig struct {
	Templates map[uint32]TemplateInfo `yaml:"templates"`
}

type TemplateInfo struct {
	Omnidirectional bool `yaml:"omnidirectional"` // Позиционные атаки работают с любой стороны
}

// JobsConfig - группы профессий (id профессий и базовых классов)
type JobsConfig struct {
	Melee  []uint8 `yaml:"melee"`
	Ranged []uint8 `yaml:"ranged"`
	Tank   []uint8 `yaml:"tank"`
	Healer []uint8 `yaml:"healer"`
}

type InspectorConfig struct {
	Port int `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	Endpoint    string `yaml:"endpoint"` // host:port OTLP HTTP коллектора; пусто - localhost:4318
	Insecure    bool   `yaml:"insecure"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Positionals: PositionalConfig{Templates: map[uint32]TemplateInfo{}},
		Jobs:        DefaultJobs(),
		Telemetry:   TelemetryConfig{ServiceName: "combo-targeting"},
	}
}

// MeleeRangeOffset возвращает пользовательское смещение дальности ближнего боя
func (c *Config) MeleeRangeOffset() float64 {
	return c.Combat.MeleeOffset
}

// MeleeRange возвращает итоговую дальность ближнего боя
func (c *Config) MeleeRange() float64 {
	return BaseMeleeRange + c.Combat.MeleeOffset
}

// TemplateRequiresPositional проверяет, нужна ли игра от позиции против шаблона NPC.
// Шаблон вне таблицы или всенаправленный шаблон позиционки не требует.
func (c *Config) TemplateRequiresPositional(templateID uint32) bool {
	info, ok := c.Positionals.Templates[templateID]
	return ok && !info.Omnidirectional
}

// JobRole возвращает роль профессии по таблице jobs
func (c *Config) JobRole(jobID uint8) Role {
	return c.Jobs.RoleOf(jobID)
}

// GetPort возвращает порт инспектора с поддержкой fallback значений
func (i *InspectorConfig) GetPort() int {
	return getPortWithEnvFallback(i.Port, "COMBO_INSPECTOR_PORT", 8099)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.MeleeRange() < 0 {
		return fmt.Errorf("%w: melee_offset %.2f делает дальность ближнего боя отрицательной", ErrInvalidConfig, c.Combat.MeleeOffset)
	}
	if c.Inspector.Port < 0 || c.Inspector.Port > 65535 {
		return fmt.Errorf("%w: inspector.port %d вне диапазона", ErrInvalidConfig, c.Inspector.Port)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV COMBO_CONFIG; если и он пуст - возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("COMBO_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает YAML конфигурацию поверх значений по умолчанию
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации: %w", err)
	}
	if cfg.Positionals.Templates == nil {
		cfg.Positionals.Templates = map[uint32]TemplateInfo{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
