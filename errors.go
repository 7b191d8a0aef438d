package cubegrid

import "errors"

// Sentinel errors for the cubegrid package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("cubegrid: invalid move notation")
	ErrInvalidMove     = errors.New("cubegrid: invalid move")

	// Settings errors
	ErrInvalidSetting   = errors.New("cubegrid: invalid setting")
	ErrUnknownScheme    = errors.New("cubegrid: unknown color scheme")
	ErrUnknownFrequency = errors.New("cubegrid: unknown frequency tier")
	ErrUnknownPlayback  = errors.New("cubegrid: unknown playback state")
)
