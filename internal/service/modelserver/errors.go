package modelserver

import "fmt"

// FailureKind classifies why the backend could not produce a result.
type FailureKind string

const (
	// FailureNetwork: the request could not be sent or the response not received.
	FailureNetwork FailureKind = "network"
	// FailureProtocol: the backend answered with a non-2xx status.
	FailureProtocol FailureKind = "protocol"
	// FailureParse: the response body could not be decoded.
	FailureParse FailureKind = "parse"
)

// FetchError is the typed failure the prediction policy decides on.
// It is never shown to end users directly.
type FetchError struct {
	Kind   FailureKind
	Status int    // set for protocol failures
	Detail string // backend-provided failure reason, when present
	Err    error
}

func (e *FetchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("model server %s failure: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("model server %s failure: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func networkErr(err error) *FetchError {
	return &FetchError{Kind: FailureNetwork, Err: err}
}

func protocolErr(status int, detail string) *FetchError {
	return &FetchError{Kind: FailureProtocol, Status: status, Detail: detail}
}

func parseErr(err error) *FetchError {
	return &FetchError{Kind: FailureParse, Err: err}
}
