package speech

import _ "embed"

// beepWAV is the fallback cue played when no speech engine is
// installed. Timing feedback still reaches the operator even though
// the direction must be read off the screen.
//
//go:embed sounds/beep.wav
var beepWAV []byte
