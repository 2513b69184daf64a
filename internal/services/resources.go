package services

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

const bytesPerMB = 1024 * 1024

// ResourceSnapshot captures process and system memory at a point in time.
type ResourceSnapshot struct {
	Timestamp          time.Time `json:"timestamp"`
	Goroutines         int       `json:"goroutines"`
	HeapAllocMB        float64   `json:"heap_alloc_mb"`
	HeapSysMB          float64   `json:"heap_sys_mb"`
	SystemTotalMB      float64   `json:"system_total_mb"`
	SystemAvailableMB  float64   `json:"system_available_mb"`
	SystemUsagePercent float64   `json:"system_usage_percent"`
	// SystemError is set when system memory could not be read; the system fields are zero.
	SystemError string `json:"system_error,omitempty"`
}

// SnapshotResources reads the Go runtime memory stats and the host virtual memory.
func SnapshotResources() ResourceSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snapshot := ResourceSnapshot{
		Timestamp:   time.Now(),
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: float64(ms.HeapAlloc) / bytesPerMB,
		HeapSysMB:   float64(ms.HeapSys) / bytesPerMB,
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		snapshot.SystemError = err.Error()
		return snapshot
	}
	snapshot.SystemTotalMB = float64(vm.Total) / bytesPerMB
	snapshot.SystemAvailableMB = float64(vm.Available) / bytesPerMB
	snapshot.SystemUsagePercent = vm.UsedPercent
	return snapshot
}

// Fields returns the snapshot as log fields.
func (s ResourceSnapshot) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"goroutines":    s.Goroutines,
		"heap_alloc_mb": s.HeapAllocMB,
		"heap_sys_mb":   s.HeapSysMB,
	}
	if s.SystemError != "" {
		fields["system_error"] = s.SystemError
		return fields
	}
	fields["system_total_mb"] = s.SystemTotalMB
	fields["system_available_mb"] = s.SystemAvailableMB
	fields["system_usage_percent"] = s.SystemUsagePercent
	return fields
}
