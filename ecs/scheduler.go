package ecs

import (
	"sort"
	"time"
)

// Phase orders systems within a single tick.
type Phase int

const (
	PhaseSetup   Phase = iota // world setup: encounter streaming
	PhaseMotion               // motion integration and path following
	PhasePathing              // path refresh
	PhaseDetect               // collision detection
	PhaseResolve              // collision resolution
	PhaseState                // timers and actor state machines
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseMotion:
		return "motion"
	case PhasePathing:
		return "pathing"
	case PhaseDetect:
		return "detect"
	case PhaseResolve:
		return "resolve"
	case PhaseState:
		return "state"
	}
	return "unknown"
}

// System updates a world once per tick with the elapsed time since the
// previous tick.
type System interface {
	Phase() Phase
	Update(w *World, dt time.Duration)
}

// Scheduler runs systems in phase order; systems sharing a phase keep
// registration order.
type Scheduler struct {
	systems []System
	sorted  bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.sorted = false
}

func (s *Scheduler) Update(w *World, dt time.Duration) {
	s.ensureSorted()
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	s.ensureSorted()
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func (s *Scheduler) ensureSorted() {
	if s.sorted {
		return
	}
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Phase() < s.systems[j].Phase()
	})
	s.sorted = true
}
