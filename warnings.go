package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/errors"
)

// SetWarningCallback routes the engine's non-fatal warnings ("file
// extension implies a format that may be wrong") to fn. Pass nil to fall
// back to the engine logger. A panic inside fn is recovered before it can
// unwind across the boundary call and is reported to the logger instead.
func SetWarningCallback(fn func(message string)) error {
	setupMu.RLock()
	defer setupMu.RUnlock()
	if eng == nil {
		return errors.NotLoaded()
	}
	eng.SetWarningHandler(fn)
	return nil
}
