package pump

import "errors"

// ErrUndersizedSystem indicates that no catalog pump can deliver the duty
// point with the configured head margin. Callers distinguish it from lookup
// and structural errors; relaxing constraints and retrying is their call.
var ErrUndersizedSystem = errors.New("pump: no curve meets the duty point")
