package model

import "errors"

// ErrReadonly is returned when a mutation targets a protected translation
// seeded from bundled language files. It is never auto-overridden.
var ErrReadonly = errors.New("translation is readonly")
