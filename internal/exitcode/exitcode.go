package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	AuthError       = 3
	LoadError       = 4
	ComputeError    = 5
	ExportError     = 6
)
