package errcode

// Error code convention:
// - 0: no error
// - 4xxx: recoverable business warnings (processing continued, some items skipped)
// - 5xxx: system errors (processing aborted)
const (
	OK            = 0
	ResumeSkipped = 4004
	SystemError   = 5000
)
