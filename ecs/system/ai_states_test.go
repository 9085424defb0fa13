package system

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNextEnemyState(t *testing.T) {
	near := enemySignals{HasTarget: true, Distance: 50, AggroRange: 100}
	leashed := enemySignals{HasTarget: true, Distance: 140, AggroRange: 100}
	far := enemySignals{HasTarget: true, Distance: 200, AggroRange: 100}

	withReady := near
	withReady.AttackReady = true
	attacking := near
	attacking.Attacking = true
	dead := near
	dead.Dead = true
	knocked := near
	knocked.KnockedBack = true

	cases := []struct {
		name string
		cur  component.EnemyState
		in   enemySignals
		want component.EnemyState
	}{
		{"idle_aggro", component.EnemyIdle, near, component.EnemyRun},
		{"idle_leash_not_applied", component.EnemyIdle, leashed, component.EnemyIdle},
		{"run_leash_holds", component.EnemyRun, leashed, component.EnemyRun},
		{"run_lost", component.EnemyRun, far, component.EnemyIdle},
		{"run_attack", component.EnemyRun, withReady, component.EnemyAttack},
		{"attack_holds", component.EnemyAttack, attacking, component.EnemyAttack},
		{"attack_done", component.EnemyAttack, near, component.EnemyRun},
		{"no_target", component.EnemyRun, enemySignals{}, component.EnemyIdle},
		{"dies", component.EnemyAttack, dead, component.EnemyDead},
		{"dead_final", component.EnemyDead, withReady, component.EnemyDead},
		{"knocked", component.EnemyRun, knocked, component.EnemyKnockedBack},
		{"knock_ends_run", component.EnemyKnockedBack, leashed, component.EnemyRun},
		{"knock_ends_idle", component.EnemyKnockedBack, far, component.EnemyIdle},
		{"knock_ends_before_attack", component.EnemyKnockedBack, withReady, component.EnemyRun},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextEnemyState(tc.cur, tc.in)
			if got != tc.want {
				t.Fatalf("nextEnemyState(%s) = %s, want %s", tc.cur, got, tc.want)
			}
			if !EnemyTransitionAllowed(tc.cur, got) {
				t.Fatalf("illegal transition %s -> %s", tc.cur, got)
			}
		})
	}
}

func TestTransitionEnemyRejectsIllegal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := &component.Deadly{Kind: component.EnemyBoss, State: component.EnemyKnockedBack}

	if TransitionEnemy(zap.New(core), 0, d, component.EnemyAttack) {
		t.Fatalf("knocked_back -> attack was allowed")
	}
	if d.State != component.EnemyKnockedBack {
		t.Fatalf("state changed to %s", d.State)
	}
	entries := logs.FilterMessage("illegal enemy transition").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["kind"]; got != "boss" {
		t.Fatalf("kind field = %v", got)
	}
}

func addEnemyOfKind(t *testing.T, w *ecs.World, kind component.EnemyKind, pos cp.Vector, en component.Enemy) ecs.Entity {
	t.Helper()
	e := addBox(t, w, pos, cp.Vector{X: 20, Y: 20})
	mustAdd(t, w, e, component.DeadlyComponent.Kind(), &component.Deadly{Kind: kind, State: component.EnemyIdle})
	mustAdd(t, w, e, component.DamageComponent.Kind(), &component.Damage{Amount: 10})
	mustAdd(t, w, e, component.HealthComponent.Kind(), &component.Health{Current: 100, Max: 100})
	mustAdd(t, w, e, component.EnemyComponent.Kind(), &en)
	mustAdd(t, w, e, component.AnimationComponent.Kind(), &component.Animation{})
	return e
}

func newAI() *AIControllerSystem {
	return NewAIControllerSystem(testSimConfig(), prefabs.Loader{Dir: "testdata-missing"}, nil)
}

func projectiles(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.DeadlyComponent.Kind(), func(e ecs.Entity, d *component.Deadly) {
		if d.Kind == component.EnemyProjectile {
			out = append(out, e)
		}
	})
	return out
}

func TestAIControllerPursuesAndLeashes(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, cp.Vector{}, 200)
	e := addEnemyOfKind(t, w, component.EnemyContact, cp.Vector{X: 80}, component.Enemy{MoveSpeed: 50, AggroRange: 100})
	ai := newAI()

	ai.Update(w, 16*time.Millisecond)
	d := ecs.MustGet(w, e, component.DeadlyComponent.Kind())
	if d.State != component.EnemyRun {
		t.Fatalf("state = %s, want run", d.State)
	}
	if !ecs.MustGet(w, e, component.MotionComponent.Kind()).FacingLeft() {
		t.Fatalf("enemy should face the player")
	}
	if clip := ecs.MustGet(w, e, component.AnimationComponent.Kind()).Clip; clip != "run" {
		t.Fatalf("clip = %q", clip)
	}

	ecs.MustGet(w, player, component.MotionComponent.Kind()).Position = cp.Vector{X: -100}
	ai.Update(w, 16*time.Millisecond)
	if d.State != component.EnemyIdle {
		t.Fatalf("state = %s, want idle beyond leash", d.State)
	}
}

func TestAIControllerRangedFiresAimedShot(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, cp.Vector{}, 200)
	e := addEnemyOfKind(t, w, component.EnemyRanged, cp.Vector{X: 0, Y: 100}, component.Enemy{
		AggroRange:       300,
		AttackRange:      150,
		AttackCooldown:   time.Second,
		AttackDuration:   200 * time.Millisecond,
		ProjectileSpeed:  50,
		ProjectileDamage: 7,
		ProjectileSize:   4,
		ProjectileTTL:    time.Second,
	})
	ai := newAI()

	ai.Update(w, 0)

	if d := ecs.MustGet(w, e, component.DeadlyComponent.Kind()); d.State != component.EnemyAttack {
		t.Fatalf("state = %s, want attack", d.State)
	}
	shots := projectiles(w)
	if len(shots) != 1 {
		t.Fatalf("got %d projectiles, want 1", len(shots))
	}
	v := ecs.MustGet(w, shots[0], component.MotionComponent.Kind()).Velocity
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y+50) > 1e-9 {
		t.Fatalf("projectile velocity = %v, want (0, -50)", v)
	}
	if dmg := ecs.MustGet(w, shots[0], component.DamageComponent.Kind()).Amount; dmg != 7 {
		t.Fatalf("projectile damage = %v", dmg)
	}

	// Cooldown blocks another volley after the attack ends.
	ai.Update(w, 300*time.Millisecond)
	if n := len(projectiles(w)); n != 1 {
		t.Fatalf("fired during cooldown, %d projectiles", n)
	}
}

func TestAIControllerDashingCharges(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, cp.Vector{}, 200)
	e := addEnemyOfKind(t, w, component.EnemyDashing, cp.Vector{X: 60}, component.Enemy{
		AggroRange:     300,
		AttackRange:    100,
		AttackCooldown: time.Second,
		AttackDuration: 300 * time.Millisecond,
		DashSpeed:      400,
	})
	mustAdd(t, w, e, component.PathComponent.Kind(), &component.Path{Waypoints: []cp.Vector{{X: 40}}})
	ai := newAI()

	ai.Update(w, 0)
	ai.Update(w, 100*time.Millisecond)

	if d := ecs.MustGet(w, e, component.DeadlyComponent.Kind()); d.State != component.EnemyAttack {
		t.Fatalf("state = %s, want attack", d.State)
	}
	if v := ecs.MustGet(w, e, component.MotionComponent.Kind()).Velocity; math.Abs(v.X+400) > 1e-9 || v.Y != 0 {
		t.Fatalf("dash velocity = %v", v)
	}
	if ecs.Has(w, e, component.PathComponent.Kind()) {
		t.Fatalf("dash should drop the path")
	}
}

func TestAIControllerBossRingUsesCadenceScript(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, cp.Vector{}, 200)
	e := addEnemyOfKind(t, w, component.EnemyBoss, cp.Vector{X: 100}, component.Enemy{
		AggroRange:      400,
		AttackCooldown:  5 * time.Second,
		AttackDuration:  100 * time.Millisecond,
		ProjectileSpeed: 10,
		ProjectileCount: 3,
		ProjectileSize:  4,
		ProjectileTTL:   time.Second,
		Script:          "boss",
	})
	ecs.MustGet(w, e, component.HealthComponent.Kind()).Current = 40

	newAI().Update(w, 0)

	if n := len(projectiles(w)); n != 12 {
		t.Fatalf("got %d projectiles, want 12 from the script", n)
	}
	if timer := ecs.MustGet(w, e, component.EnemyComponent.Kind()).AttackTimer; timer != 1600*time.Millisecond {
		t.Fatalf("attack timer = %v, want script interval", timer)
	}
}

func TestAIControllerBossFallsBackWithoutScript(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := ecs.NewWorld()
	addPlayer(t, w, cp.Vector{}, 200)
	e := addEnemyOfKind(t, w, component.EnemyBoss, cp.Vector{X: 100}, component.Enemy{
		AggroRange:      400,
		AttackCooldown:  5 * time.Second,
		ProjectileSpeed: 10,
		ProjectileCount: 3,
		Script:          "no-such-script",
	})
	ai := NewAIControllerSystem(testSimConfig(), prefabs.Loader{}, zap.New(core))

	ai.Update(w, 0)

	if n := len(projectiles(w)); n != 3 {
		t.Fatalf("got %d projectiles, want prefab count 3", n)
	}
	if timer := ecs.MustGet(w, e, component.EnemyComponent.Kind()).AttackTimer; timer != 5*time.Second {
		t.Fatalf("attack timer = %v, want prefab cooldown", timer)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestAIControllerCorpse(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, cp.Vector{}, 200)
	e := addEnemyOfKind(t, w, component.EnemySwarm, cp.Vector{X: 50}, component.Enemy{AggroRange: 100})
	ecs.MustGet(w, e, component.HealthComponent.Kind()).Current = 0
	ecs.MustGet(w, e, component.MotionComponent.Kind()).Velocity = cp.Vector{X: 9}

	newAI().Update(w, 0)

	if d := ecs.MustGet(w, e, component.DeadlyComponent.Kind()); d.State != component.EnemyDead {
		t.Fatalf("state = %s, want dead", d.State)
	}
	timer, ok := ecs.Get(w, e, component.DeathTimerComponent.Kind())
	if !ok || timer.Remaining != testSimConfig().CorpseTimer {
		t.Fatalf("corpse timer = %+v", timer)
	}
	if v := ecs.MustGet(w, e, component.MotionComponent.Kind()).Velocity; v != (cp.Vector{}) {
		t.Fatalf("corpse moving at %v", v)
	}
}

func TestAIControllerIgnoresDyingPlayer(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, cp.Vector{}, 0)
	mustAdd(t, w, player, component.DeathTimerComponent.Kind(), &component.DeathTimer{Remaining: time.Second})
	e := addEnemyOfKind(t, w, component.EnemyContact, cp.Vector{X: 10}, component.Enemy{AggroRange: 100})

	newAI().Update(w, 0)

	if d := ecs.MustGet(w, e, component.DeadlyComponent.Kind()); d.State != component.EnemyIdle {
		t.Fatalf("state = %s, want idle", d.State)
	}
}
