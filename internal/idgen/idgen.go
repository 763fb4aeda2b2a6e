// Package idgen generates unique node/step ids for the editor.
//
// The console historically derived ids from wall-clock milliseconds
// (`${type}_${timestamp}`), which collides under rapid or bulk node creation.
// Ids here combine a random UUID fragment with a process-wide monotonic
// counter instead: unique across sessions, ordered within one.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var counter atomic.Uint64

// NewStepID returns a fresh id of the form {type}_{uuid8}{seq}. The core
// accepts any unique string id; this format is only a convention.
func NewStepID(stepType string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%x%d", stepType, id[:4], counter.Add(1))
}
