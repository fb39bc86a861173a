package pipeline

import "fmt"

// Kind classifies a pipeline failure for the caller. Each kind implies a
// different remediation, so all of them must stay distinguishable at the
// HTTP boundary.
type Kind string

const (
	// KindClientInput: a required upload is missing or empty. Not retried.
	KindClientInput Kind = "client_input"

	// KindInfrastructure: staging I/O or process spawn failed. The full
	// error is logged server-side; callers get a sanitized message.
	KindInfrastructure Kind = "infrastructure"

	// KindTimeout: the transcoder exceeded its wall-clock bound and was
	// killed. Retry with a smaller input or a higher bound.
	KindTimeout Kind = "timeout"

	// KindTranscode: the transcoder exited non-zero, or exited zero
	// without producing a non-empty output file.
	KindTranscode Kind = "transcode"

	// KindBusy: no transcode slot became free within the admission window.
	KindBusy Kind = "busy"
)

// Error is the structured failure crossing the pipeline boundary. Message
// and Detail are safe to return to callers; the wrapped cause is not and
// stays server-side.
type Error struct {
	Kind     Kind
	Message  string // client-facing summary
	ExitCode int    // transcoder exit status, when it ran
	Detail   string // bounded transcoder stderr excerpt, when relevant

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func clientInputErr(msg string, cause error) *Error {
	return &Error{Kind: KindClientInput, Message: msg, cause: cause}
}

func infraErr(msg string, cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: msg, cause: cause}
}

func timeoutErr(cause error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: "processing timeout - video too large for the configured limit",
		cause:   cause,
	}
}

func transcodeErr(msg string, exitCode int, detail string, cause error) *Error {
	return &Error{
		Kind:     KindTranscode,
		Message:  msg,
		ExitCode: exitCode,
		Detail:   detail,
		cause:    cause,
	}
}

func busyErr() *Error {
	return &Error{Kind: KindBusy, Message: "too many concurrent transcodes, try again later"}
}
