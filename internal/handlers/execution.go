package handlers

import (
	"runtime"
	"time"
)

// Execution is the timing and memory metadata attached to every computation
// response. It is embedded so its fields are flattened into the JSON body.
type Execution struct {
	DurationSeconds  int64  `json:"execution_duration_seconds"`
	DurationNanos    int32  `json:"execution_duration_nanos"`
	MemoryUsageBytes uint64 `json:"memory_usage_bytes"`
}

// NewExecution splits elapsed into whole seconds and the nanosecond remainder
// and samples the heap currently in use.
func NewExecution(elapsed time.Duration) Execution {
	return Execution{
		DurationSeconds:  int64(elapsed / time.Second),
		DurationNanos:    int32(elapsed % time.Second),
		MemoryUsageBytes: MemoryUsageBytes(),
	}
}

// MemoryUsageBytes reports the bytes of allocated heap objects.
func MemoryUsageBytes() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapAlloc
}
