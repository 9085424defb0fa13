package prefabs

import (
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Cadence is a compiled attack-cadence script. The script reads
// health_fraction and defines interval (milliseconds) and count.
type Cadence struct {
	name     string
	compiled *tengo.Compiled
}

func (l Loader) LoadCadence(name string) (*Cadence, error) {
	src, err := l.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return CompileCadence(name, src)
}

func CompileCadence(name string, src []byte) (*Cadence, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("health_fraction", 1.0); err != nil {
		return nil, fmt.Errorf("prefabs: script %s: %w", name, err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile script %s: %w", name, err)
	}
	return &Cadence{name: name, compiled: compiled}, nil
}

// Next runs the script for the given health fraction.
func (c *Cadence) Next(healthFraction float64) (time.Duration, int, error) {
	run := c.compiled.Clone()
	if err := run.Set("health_fraction", healthFraction); err != nil {
		return 0, 0, fmt.Errorf("prefabs: script %s: %w", c.name, err)
	}
	if err := run.Run(); err != nil {
		return 0, 0, fmt.Errorf("prefabs: run script %s: %w", c.name, err)
	}
	if !run.IsDefined("interval") || !run.IsDefined("count") {
		return 0, 0, fmt.Errorf("prefabs: script %s must define interval and count", c.name)
	}
	interval := time.Duration(run.Get("interval").Int()) * time.Millisecond
	count := run.Get("count").Int()
	if interval <= 0 || count < 0 {
		return 0, 0, fmt.Errorf("prefabs: script %s: bad cadence interval=%v count=%d", c.name, interval, count)
	}
	return interval, count, nil
}
