package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNextPlayerState(t *testing.T) {
	cases := []struct {
		name string
		cur  component.PlayerState
		in   playerSignals
		want component.PlayerState
	}{
		{"idle_to_run", component.PlayerIdle, playerSignals{Moving: true}, component.PlayerRun},
		{"run_to_idle", component.PlayerRun, playerSignals{}, component.PlayerIdle},
		{"idle_stays", component.PlayerIdle, playerSignals{}, component.PlayerIdle},
		{"run_to_attack", component.PlayerRun, playerSignals{Moving: true, Attack: true}, component.PlayerAttack},
		{"attack_holds", component.PlayerAttack, playerSignals{Moving: true}, component.PlayerAttack},
		{"attack_no_restart", component.PlayerAttack, playerSignals{Attack: true}, component.PlayerAttack},
		{"attack_ends_run", component.PlayerAttack, playerSignals{Moving: true, TimerDone: true}, component.PlayerRun},
		{"attack_ends_idle", component.PlayerAttack, playerSignals{TimerDone: true}, component.PlayerIdle},
		{"dash", component.PlayerRun, playerSignals{Moving: true, Dash: true, CanDash: true}, component.PlayerDash},
		{"dash_blocked", component.PlayerRun, playerSignals{Moving: true, Dash: true}, component.PlayerRun},
		{"dash_into_attack", component.PlayerDash, playerSignals{Attack: true}, component.PlayerAttack},
		{"dash_ends", component.PlayerDash, playerSignals{TimerDone: true}, component.PlayerIdle},
		{"dying_from_attack", component.PlayerAttack, playerSignals{Dying: true, Attack: true}, component.PlayerDead},
		{"dead_is_final", component.PlayerDead, playerSignals{Moving: true, Attack: true, TimerDone: true}, component.PlayerDead},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextPlayerState(tc.cur, tc.in)
			if got != tc.want {
				t.Fatalf("nextPlayerState(%s, %+v) = %s, want %s", tc.cur, tc.in, got, tc.want)
			}
			if !PlayerTransitionAllowed(tc.cur, got) {
				t.Fatalf("transition function produced illegal %s -> %s", tc.cur, got)
			}
		})
	}
}

func TestTransitionPlayerRejectsIllegal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	p := &component.Player{State: component.PlayerDead}
	if TransitionPlayer(logger, 0, p, component.PlayerRun) {
		t.Fatalf("dead -> run was allowed")
	}
	if p.State != component.PlayerDead {
		t.Fatalf("state changed to %s", p.State)
	}
	if logs.FilterMessage("illegal player transition").Len() != 1 {
		t.Fatalf("illegal transition not logged: %+v", logs.All())
	}

	p.State = component.PlayerAttack
	if TransitionPlayer(logger, 0, p, component.PlayerDash) {
		t.Fatalf("attack -> dash was allowed")
	}
	if !TransitionPlayer(logger, 0, p, component.PlayerIdle) || p.State != component.PlayerIdle {
		t.Fatalf("attack -> idle rejected")
	}
}

func TestPlayerClip(t *testing.T) {
	if got := PlayerClip(component.PlayerDash); got != "dash" {
		t.Fatalf("clip = %q", got)
	}
	if got := PlayerClip(component.PlayerState(99)); got != "idle" {
		t.Fatalf("unknown state clip = %q", got)
	}
}

func addControlledPlayer(t *testing.T, w *ecs.World) (ecs.Entity, *component.Player) {
	t.Helper()
	e := addPlayer(t, w, cp.Vector{}, 200)
	p := &component.Player{
		MoveSpeed:      100,
		DashSpeed:      400,
		DashDuration:   100 * time.Millisecond,
		DashCooldown:   time.Second,
		DashCost:       30,
		Stamina:        50,
		MaxStamina:     100,
		StaminaRegen:   10,
		AttackDuration: 200 * time.Millisecond,
		AttackDamage:   40,
		AttackReach:    10,
		AttackSize:     cp.Vector{X: 16, Y: 16},
		AttackHitbox:   100 * time.Millisecond,
	}
	mustAdd(t, w, e, component.PlayerComponent.Kind(), p)
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.AnimationComponent.Kind(), &component.Animation{})
	return e, p
}

func TestPlayerControllerRunAndFacing(t *testing.T) {
	w := ecs.NewWorld()
	e, p := addControlledPlayer(t, w)
	ecs.MustGet(w, e, component.InputComponent.Kind()).Move = cp.Vector{X: -1}

	NewPlayerControllerSystem(nil).Update(w, 16*time.Millisecond)

	m := ecs.MustGet(w, e, component.MotionComponent.Kind())
	if p.State != component.PlayerRun {
		t.Fatalf("state = %s, want run", p.State)
	}
	if m.Velocity != (cp.Vector{X: -100}) {
		t.Fatalf("velocity = %v", m.Velocity)
	}
	if !m.FacingLeft() {
		t.Fatalf("player should face left")
	}
	if clip := ecs.MustGet(w, e, component.AnimationComponent.Kind()).Clip; clip != "run" {
		t.Fatalf("clip = %q", clip)
	}
}

func TestPlayerControllerAttackSpawnsHitbox(t *testing.T) {
	w := ecs.NewWorld()
	e, p := addControlledPlayer(t, w)
	in := ecs.MustGet(w, e, component.InputComponent.Kind())
	in.Attack = true
	sys := NewPlayerControllerSystem(nil)

	sys.Update(w, 16*time.Millisecond)

	if p.State != component.PlayerAttack || p.StateTimer != 200*time.Millisecond {
		t.Fatalf("player = %s timer %v", p.State, p.StateTimer)
	}
	if in.Attack {
		t.Fatalf("attack input not consumed")
	}
	hitboxes := ecs.Query(w, component.AttackComponent.Kind())
	if len(hitboxes) != 1 {
		t.Fatalf("got %d hitboxes, want 1", len(hitboxes))
	}
	// Facing right: player half-width 10 plus reach 10.
	if pos := ecs.MustGet(w, hitboxes[0], component.MotionComponent.Kind()).Position; pos != (cp.Vector{X: 20}) {
		t.Fatalf("hitbox at %v, want (20, 0)", pos)
	}

	sys.Update(w, 250*time.Millisecond)
	if p.State != component.PlayerIdle {
		t.Fatalf("attack did not end, state %s", p.State)
	}
	if n := ecs.Count(w, component.AttackComponent.Kind()); n != 1 {
		t.Fatalf("attack re-triggered without input: %d hitboxes", n)
	}
}

func TestPlayerControllerDash(t *testing.T) {
	w := ecs.NewWorld()
	e, p := addControlledPlayer(t, w)
	in := ecs.MustGet(w, e, component.InputComponent.Kind())
	in.Move = cp.Vector{Y: 1}
	in.Dash = true
	sys := NewPlayerControllerSystem(nil)

	sys.Update(w, 0)

	if p.State != component.PlayerDash {
		t.Fatalf("state = %s, want dash", p.State)
	}
	if p.Stamina != 20 || p.DashCooldownTimer != time.Second {
		t.Fatalf("stamina %v cooldown %v", p.Stamina, p.DashCooldownTimer)
	}
	if v := ecs.MustGet(w, e, component.MotionComponent.Kind()).Velocity; v != (cp.Vector{Y: 400}) {
		t.Fatalf("velocity = %v", v)
	}

	// Not enough stamina and still cooling down.
	sys.Update(w, 200*time.Millisecond)
	in.Dash = true
	sys.Update(w, 0)
	if p.State != component.PlayerRun {
		t.Fatalf("state = %s, want run", p.State)
	}
	if p.Stamina != 22 {
		t.Fatalf("stamina = %v, want 22 after regen", p.Stamina)
	}
}

func TestPlayerControllerDeath(t *testing.T) {
	w := ecs.NewWorld()
	e, p := addControlledPlayer(t, w)
	mustAdd(t, w, e, component.DeathTimerComponent.Kind(), &component.DeathTimer{Remaining: time.Second})
	in := ecs.MustGet(w, e, component.InputComponent.Kind())
	in.Move = cp.Vector{X: 1}
	in.Attack = true

	NewPlayerControllerSystem(nil).Update(w, 16*time.Millisecond)

	if p.State != component.PlayerDead {
		t.Fatalf("state = %s, want dead", p.State)
	}
	if v := ecs.MustGet(w, e, component.MotionComponent.Kind()).Velocity; v != (cp.Vector{}) {
		t.Fatalf("dead player moving at %v", v)
	}
	if ecs.Count(w, component.AttackComponent.Kind()) != 0 {
		t.Fatalf("dead player attacked")
	}
}
