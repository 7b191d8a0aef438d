// Package cubegrid animates an endless isometric tiling of 3x3x3 twisty
// puzzles.
//
// Every cube in the grid turns random layers on its own schedule, or all
// cubes turn the same layer together in synchronized mode. Each cube
// records the moves it made, so it can be solved by replaying that history
// in reverse.
//
// # Quick Start
//
// Drive a grid from a frame loop:
//
//	grid := cubegrid.NewGrid(cubegrid.WithLogger(logger))
//	defer grid.Close()
//
//	store := cubegrid.NewSettingsStore(cubegrid.DefaultSettings())
//	grid.Resize(cubegrid.Viewport{Width: 1920, Height: 1080}, store.Snapshot())
//
//	for now := range time.Tick(time.Second / 60) {
//	    if store.TakeSolveRequest() {
//	        grid.Solve()
//	    }
//	    grid.Tick(now, store.Snapshot())
//	}
//
// # Single Cubes
//
// An Instance can be used without a grid:
//
//	inst := cubegrid.NewInstance(cubegrid.Slot{})
//	inst.StartMove(cubegrid.R, true)
//	inst.StartSolve()
//	for inst.State() != cubegrid.StateIdle {
//	    inst.Update(time.Now(), settings)
//	}
//	fmt.Println("Solved:", inst.IsSolved())
//
// Moves are written in standard notation with R, L, U, D, F and B for the
// outer layers and M, E and S for the slices:
//
//	moves, err := cubegrid.ParseMoves("R U R' U'")
//
// # Rendering
//
// The package holds no renderer. Cube transforms live in a scene graph
// (package scene) that any renderer can walk, and colors come from the
// shared Materials of the grid.
package cubegrid
