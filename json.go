package proc

// ErrorResponse is the flat, serializable representation of a process
// failure. The wrapped cause chain is intentionally excluded: raw
// failures may carry file paths or other internal detail that has no
// place on an API surface.
type ErrorResponse struct {
	// Kind is the failure category.
	Kind string `json:"kind"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Classification indicates whether the failure is retryable or
	// permanent.
	Classification string `json:"classification"`

	// Command is the command that was being executed, when known.
	Command string `json:"command,omitempty"`

	// Args is the argument list, when known.
	Args []string `json:"args,omitempty"`

	// ExitCode is set for NON_ZERO_EXIT failures.
	ExitCode *int `json:"exitCode,omitempty"`

	// Signal is set for PROCESS_KILLED failures.
	Signal string `json:"signal,omitempty"`

	// Killed marks PROCESS_KILLED failures explicitly, alongside Signal.
	Killed bool `json:"killed,omitempty"`

	// Timeout is the time limit that was exceeded, for PROCESS_TIMEOUT
	// failures where the limit is known.
	Timeout string `json:"timeout,omitempty"`

	// Errno is set for SPAWN_ERROR failures when the OS error code name
	// is known.
	Errno string `json:"errno,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for JSON
// serialization. Returns nil if err is nil.
//
// For the package's own variants it extracts the kind, message,
// classification, command line, and variant-specific fields. Any other
// error serializes with KindUnknown and its message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	resp := &ErrorResponse{
		Kind:           string(KindUnknown),
		Message:        err.Error(),
		Classification: string(GetClassification(err)),
	}

	var procErr Error
	if !As(err, &procErr) {
		return resp
	}

	resp.Kind = string(procErr.Kind())
	resp.Message = procErr.Message()
	resp.Command, resp.Args = procErr.CmdLine()

	var exitErr *ExitError
	var killedErr *KilledError
	var timeoutErr *TimeoutError
	var spawnErr *SpawnError
	switch {
	case As(err, &exitErr):
		code := exitErr.ExitCode
		resp.ExitCode = &code
	case As(err, &killedErr):
		resp.Signal = killedErr.Signal
		resp.Killed = killedErr.Killed
	case As(err, &timeoutErr):
		if timeoutErr.Timeout > 0 {
			resp.Timeout = timeoutErr.Timeout.String()
		}
	case As(err, &spawnErr):
		resp.Errno = spawnErr.Errno
	}

	return resp
}
