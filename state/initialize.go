package state

import (
	"time"

	"unpdf/parse"
	"unpdf/render"
)

// newLocalEnv creates a new LocalEnv instance with default values.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:      time.Now(),
		ParseOpts:  parse.DefaultOptions(),
		RenderOpts: render.DefaultOptions(),
	}
}
