package state

import (
	"os"
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Out:   os.Stdout,
		start: time.Now(),
	}
}
