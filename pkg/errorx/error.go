package errorx

import "fmt"

type Error struct {
	Code     Code
	Message  string
	Metadata map[string]any
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// With attaches a diagnostic value to the error. It is used by economic
// errors to carry machine-readable hints (e.g. the minimum acceptable bid)
// next to the human-readable message.
func (e Error) With(key string, value any) Error {
	metadata := map[string]any{}
	for k, v := range e.Metadata {
		metadata[k] = v
	}
	metadata[key] = value
	e.Metadata = metadata
	return e
}
