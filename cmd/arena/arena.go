package main

import "github.com/milk9111/topdown/level"

// arenaRows is the built-in playground. Digits are spawn markers: 3
// contact, 4 ranged, 5 swarm, 6 dashing, 7 boss, 8 eatable, 9 sticky.
var arenaRows = []string{
	"##############################",
	"#............................#",
	"#..3......................4..#",
	"#............................#",
	"#....#####....8.....#####....#",
	"#....#..................#....#",
	"#....#..3........9......#....#",
	"#....#..................#....#",
	"#............................#",
	"#.........#........#......6..#",
	"#......8..#........#.........#",
	"#............................#",
	"#....#..................#....#",
	"#....#...............55.#....#",
	"#....#..................#....#",
	"#....#####....9.....#####....#",
	"#............................#",
	"#.........................7..#",
	"#............................#",
	"##############################",
}

var arenaSpawn = level.Cell{X: 14, Y: 9}
