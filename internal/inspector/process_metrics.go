package inspector

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessMetrics - сведения о процессе инспектора
type ProcessMetrics struct {
	StartTime time.Time
}

// NewProcessMetrics фиксирует время старта
func NewProcessMetrics() *ProcessMetrics {
	return &ProcessMetrics{StartTime: time.Now()}
}

// Uptime возвращает время работы в виде "1ч 2м 3с"
func (pm *ProcessMetrics) Uptime() string {
	return formatUptime(time.Since(pm.StartTime))
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// MemoryMB возвращает объём выделенной кучи в мегабайтах
func (pm *ProcessMetrics) MemoryMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024
}

// CPUPercent возвращает загрузку CPU процессом; при ошибке - системную за 100мс
func (pm *ProcessMetrics) CPUPercent() (float64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	percent, err := proc.CPUPercent()
	if err == nil {
		return percent, nil
	}

	system, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(system) == 0 {
		return 0, err
	}
	return system[0], nil
}

// Snapshot собирает метрики для /api/stats
func (pm *ProcessMetrics) Snapshot() map[string]interface{} {
	cpuPercent, _ := pm.CPUPercent()
	return map[string]interface{}{
		"uptime":      pm.Uptime(),
		"memory_mb":   fmt.Sprintf("%.2f", pm.MemoryMB()),
		"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
		"goroutines":  runtime.NumGoroutine(),
		"server_time": time.Now().Unix(),
	}
}
