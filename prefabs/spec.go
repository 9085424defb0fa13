package prefabs

import (
	"fmt"
	"time"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](l Loader, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VecSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type PlayerSpec struct {
	Name         string        `yaml:"name"`
	Size         VecSpec       `yaml:"size"`
	Health       float64       `yaml:"health"`
	MoveSpeed    float64       `yaml:"move_speed"`
	DashSpeed    float64       `yaml:"dash_speed"`
	DashDuration time.Duration `yaml:"dash_duration"`
	DashCooldown time.Duration `yaml:"dash_cooldown"`
	DashCost     float64       `yaml:"dash_cost"`
	Stamina      float64       `yaml:"stamina"`
	StaminaRegen float64       `yaml:"stamina_regen"`
	Attack       AttackSpec    `yaml:"attack"`
}

type AttackSpec struct {
	Damage   float64       `yaml:"damage"`
	Duration time.Duration `yaml:"duration"`
	Hitbox   time.Duration `yaml:"hitbox"`
	Reach    float64       `yaml:"reach"`
	Size     VecSpec       `yaml:"size"`
}

type EnemySpec struct {
	Name           string          `yaml:"name"`
	Kind           string          `yaml:"kind"`
	Size           VecSpec         `yaml:"size"`
	Health         float64         `yaml:"health"`
	Damage         float64         `yaml:"damage"`
	MoveSpeed      float64         `yaml:"move_speed"`
	AggroRange     float64         `yaml:"aggro_range"`
	AttackRange    float64         `yaml:"attack_range"`
	AttackCooldown time.Duration   `yaml:"attack_cooldown"`
	AttackDuration time.Duration   `yaml:"attack_duration"`
	DashSpeed      float64         `yaml:"dash_speed"`
	Projectile     *ProjectileSpec `yaml:"projectile"`
	Script         string          `yaml:"script"`
}

type ProjectileSpec struct {
	Speed  float64       `yaml:"speed"`
	Damage float64       `yaml:"damage"`
	Count  int           `yaml:"count"`
	Size   float64       `yaml:"size"`
	TTL    time.Duration `yaml:"ttl"`
}

type EatableSpec struct {
	Name   string  `yaml:"name"`
	Size   VecSpec `yaml:"size"`
	Points int     `yaml:"points"`
}

type StickySpec struct {
	Name     string    `yaml:"name"`
	Size     VecSpec   `yaml:"size"`
	Damage   float64   `yaml:"damage"`
	Angle    float64   `yaml:"angle"`
	Vertices []VecSpec `yaml:"vertices"`
	Indices  []int     `yaml:"indices"`
}

func (s StickySpec) Validate() error {
	if len(s.Indices)%3 != 0 {
		return fmt.Errorf("prefabs: sticky %s: %d indices is not a triangle list", s.Name, len(s.Indices))
	}
	for _, idx := range s.Indices {
		if idx < 0 || idx >= len(s.Vertices) {
			return fmt.Errorf("prefabs: sticky %s: index %d out of range", s.Name, idx)
		}
	}
	return nil
}

type enemiesFile struct {
	Enemies []EnemySpec `yaml:"enemies"`
}

type pickupsFile struct {
	Eatable EatableSpec `yaml:"eatable"`
	Sticky  StickySpec  `yaml:"sticky"`
}

// Catalog is every actor spec the simulation spawns from.
type Catalog struct {
	Player  PlayerSpec
	Enemies map[string]EnemySpec
	Eatable EatableSpec
	Sticky  StickySpec
}

// Enemy returns the spec registered for an enemy kind name.
func (c *Catalog) Enemy(kind string) (EnemySpec, bool) {
	if c == nil {
		return EnemySpec{}, false
	}
	spec, ok := c.Enemies[kind]
	return spec, ok
}

func (l Loader) LoadCatalog() (*Catalog, error) {
	player, err := LoadSpec[PlayerSpec](l, "player.yaml")
	if err != nil {
		return nil, err
	}
	enemies, err := LoadSpec[enemiesFile](l, "enemies.yaml")
	if err != nil {
		return nil, err
	}
	pickups, err := LoadSpec[pickupsFile](l, "pickups.yaml")
	if err != nil {
		return nil, err
	}
	if err := pickups.Sticky.Validate(); err != nil {
		return nil, err
	}

	cat := &Catalog{
		Player:  player,
		Enemies: make(map[string]EnemySpec, len(enemies.Enemies)),
		Eatable: pickups.Eatable,
		Sticky:  pickups.Sticky,
	}
	for _, e := range enemies.Enemies {
		if e.Kind == "" {
			return nil, fmt.Errorf("prefabs: enemy %q has no kind", e.Name)
		}
		if _, dup := cat.Enemies[e.Kind]; dup {
			return nil, fmt.Errorf("prefabs: duplicate enemy kind %q", e.Kind)
		}
		cat.Enemies[e.Kind] = e
	}
	return cat, nil
}
