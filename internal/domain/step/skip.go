package step

import "errors"

// ErrSkip signals from Apply that the step could not act but should be
// recorded as skipped rather than failed. The config patcher uses this when
// an edit anchor is absent: the target may already be in a different but
// acceptable state.
var ErrSkip = errors.New("step skipped")
