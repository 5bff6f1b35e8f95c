package models

import "fmt"

// FetchErrorKind classifies why a price could not be fetched
type FetchErrorKind string

const (
	FetchErrorTransport  FetchErrorKind = "transport"
	FetchErrorHTTPStatus FetchErrorKind = "http_status"
	FetchErrorNotFound   FetchErrorKind = "not_found"
	FetchErrorMalformed  FetchErrorKind = "malformed"
	FetchErrorNonNumeric FetchErrorKind = "non_numeric"
)

// FetchError is a per-item pricing failure. It never aborts a batch.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Detail string
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s fetching %s", e.Kind, e.URL)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches another *FetchError by kind, so errors.Is(err, &FetchError{Kind: FetchErrorNotFound}) works
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
