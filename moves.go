package cubegrid

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	inst.StartMove(cubegrid.R, true)
var (
	// Right face moves
	R      = Move{Axis: AxisX, Layer: 2, Direction: -1, Turns: 1} // Right clockwise
	RPrime = Move{Axis: AxisX, Layer: 2, Direction: 1, Turns: 1}  // Right counter-clockwise
	R2     = Move{Axis: AxisX, Layer: 2, Direction: -1, Turns: 2} // Right 180

	// Left face moves
	L      = Move{Axis: AxisX, Layer: 0, Direction: 1, Turns: 1}
	LPrime = Move{Axis: AxisX, Layer: 0, Direction: -1, Turns: 1}
	L2     = Move{Axis: AxisX, Layer: 0, Direction: 1, Turns: 2}

	// Up face moves
	U      = Move{Axis: AxisY, Layer: 2, Direction: -1, Turns: 1}
	UPrime = Move{Axis: AxisY, Layer: 2, Direction: 1, Turns: 1}
	U2     = Move{Axis: AxisY, Layer: 2, Direction: -1, Turns: 2}

	// Down face moves
	D      = Move{Axis: AxisY, Layer: 0, Direction: 1, Turns: 1}
	DPrime = Move{Axis: AxisY, Layer: 0, Direction: -1, Turns: 1}
	D2     = Move{Axis: AxisY, Layer: 0, Direction: 1, Turns: 2}

	// Front face moves
	F      = Move{Axis: AxisZ, Layer: 2, Direction: -1, Turns: 1}
	FPrime = Move{Axis: AxisZ, Layer: 2, Direction: 1, Turns: 1}
	F2     = Move{Axis: AxisZ, Layer: 2, Direction: -1, Turns: 2}

	// Back face moves
	B      = Move{Axis: AxisZ, Layer: 0, Direction: 1, Turns: 1}
	BPrime = Move{Axis: AxisZ, Layer: 0, Direction: -1, Turns: 1}
	B2     = Move{Axis: AxisZ, Layer: 0, Direction: 1, Turns: 2}

	// Slice moves
	M      = Move{Axis: AxisX, Layer: 1, Direction: 1, Turns: 1} // Follows L
	MPrime = Move{Axis: AxisX, Layer: 1, Direction: -1, Turns: 1}
	E      = Move{Axis: AxisY, Layer: 1, Direction: 1, Turns: 1} // Follows D
	EPrime = Move{Axis: AxisY, Layer: 1, Direction: -1, Turns: 1}
	S      = Move{Axis: AxisZ, Layer: 1, Direction: -1, Turns: 1} // Follows F
	SPrime = Move{Axis: AxisZ, Layer: 1, Direction: 1, Turns: 1}
)

// Sexy move: R U R' U'. Six repetitions return to the start.
var SexyMove = []Move{R, U, RPrime, UPrime}

// T-perm algorithm
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
