package nav

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/level"
)

func grid(t *testing.T, rows ...string) *level.Level {
	t.Helper()
	codes, err := level.FromRows(rows...)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	l, err := level.New(codes, cp.Vector{X: 32, Y: 32}, cp.Vector{})
	if err != nil {
		t.Fatalf("level.New: %v", err)
	}
	return l
}

func TestFindCellsStraightCorridor(t *testing.T) {
	l := grid(t,
		"######",
		"#....#",
		"######",
	)
	res := FindCells(l, level.Cell{X: 1, Y: 1}, level.Cell{X: 4, Y: 1}, 0)
	want := []level.Cell{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}
	if len(res.Cells) != len(want) {
		t.Fatalf("path = %v, want %v", res.Cells, want)
	}
	for i := range want {
		if res.Cells[i] != want[i] {
			t.Fatalf("path = %v, want %v", res.Cells, want)
		}
	}
}

func TestFindCellsStartIsGoal(t *testing.T) {
	l := grid(t, "...")
	res := FindCells(l, level.Cell{X: 1, Y: 0}, level.Cell{X: 1, Y: 0}, 0)
	if len(res.Cells) != 1 || res.Cells[0] != (level.Cell{X: 1, Y: 0}) {
		t.Fatalf("path = %v", res.Cells)
	}
}

func TestFindCellsUnreachable(t *testing.T) {
	cases := []struct {
		name  string
		rows  []string
		start level.Cell
		goal  level.Cell
	}{
		{
			name: "enclosed_goal",
			rows: []string{
				".....",
				"..###",
				"..#.#",
				"..###",
			},
			start: level.Cell{X: 0, Y: 0},
			goal:  level.Cell{X: 3, Y: 2},
		},
		{
			name:  "goal_off_grid",
			rows:  []string{"...."},
			start: level.Cell{X: 0, Y: 0},
			goal:  level.Cell{X: 9, Y: 0},
		},
		{
			name: "only_corner_gap",
			rows: []string{
				".#",
				"#.",
			},
			start: level.Cell{X: 0, Y: 0},
			goal:  level.Cell{X: 1, Y: 1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := grid(t, c.rows...)
			if res := FindCells(l, c.start, c.goal, 0); len(res.Cells) != 0 {
				t.Fatalf("expected no path, got %v", res.Cells)
			}
		})
	}
}

func TestFindCellsRespectsCornerRule(t *testing.T) {
	l := grid(t,
		"...",
		".#.",
		"...",
	)
	res := FindCells(l, level.Cell{X: 0, Y: 1}, level.Cell{X: 2, Y: 1}, 0)
	if len(res.Cells) == 0 {
		t.Fatalf("expected a path around the pillar")
	}
	for i := 1; i < len(res.Cells); i++ {
		if !l.IsWalkable(res.Cells[i-1], res.Cells[i]) {
			t.Fatalf("step %v -> %v is not walkable in %v", res.Cells[i-1], res.Cells[i], res.Cells)
		}
	}
}

func TestFindCellsMonotonicAndNoRevisits(t *testing.T) {
	l := grid(t,
		"..........",
		"..####....",
		".....#....",
		"###..#.##.",
		"..........",
	)
	res := FindCells(l, level.Cell{X: 0, Y: 0}, level.Cell{X: 9, Y: 4}, 0)
	if len(res.Cells) == 0 {
		t.Fatalf("expected a path")
	}

	seen := make(map[level.Cell]bool)
	total := 0.0
	for i, c := range res.Cells {
		if seen[c] {
			t.Fatalf("cell %v visited twice in %v", c, res.Cells)
		}
		seen[c] = true
		if i == 0 {
			continue
		}
		step := StepCost(l, res.Cells[i-1], c)
		if step <= 0 {
			t.Fatalf("non-positive step cost %v", step)
		}
		next := total + step
		if next < total {
			t.Fatalf("cumulative cost decreased at %d", i)
		}
		total = next
	}
	if first, last := res.Cells[0], res.Cells[len(res.Cells)-1]; first != (level.Cell{X: 0, Y: 0}) || last != (level.Cell{X: 9, Y: 4}) {
		t.Fatalf("path endpoints %v .. %v", first, last)
	}
}

func TestFindCellsSearchLimit(t *testing.T) {
	l := grid(t, "..........")
	res := FindCells(l, level.Cell{X: 0, Y: 0}, level.Cell{X: 9, Y: 0}, 3)
	if !res.Limited {
		t.Fatalf("expected the search to hit its limit")
	}
	if len(res.Cells) != 0 {
		t.Fatalf("limited search returned a path: %v", res.Cells)
	}
	if res.Expanded != 3 {
		t.Fatalf("expanded %d nodes, want 3", res.Expanded)
	}
}

func TestFindPathReturnsTileCenters(t *testing.T) {
	l := grid(t, "...")
	got := FindPath(l, cp.Vector{X: 3, Y: 30}, cp.Vector{X: 90, Y: 1}, 0)
	want := []cp.Vector{{X: 16, Y: 16}, {X: 48, Y: 16}, {X: 80, Y: 16}}
	if len(got) != len(want) {
		t.Fatalf("FindPath = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FindPath = %v, want %v", got, want)
		}
	}
}

func TestCostModel(t *testing.T) {
	l := grid(t, "..", "..")
	a, right, diag := level.Cell{}, level.Cell{X: 1}, level.Cell{X: 1, Y: 1}
	if got := StepCost(l, a, right); got != 32 {
		t.Fatalf("cardinal cost = %v, want 32", got)
	}
	if got := StepCost(l, a, diag); got != 16 {
		t.Fatalf("diagonal cost = %v, want 16", got)
	}
	if got := Heuristic(l, a, right); got != 32 {
		t.Fatalf("heuristic = %v, want 32", got)
	}
}
