package lazykit

import "go.llib.dev/frameless/pkg/errorkit"

const (
	// ErrIndexOutOfRange is returned when an index falls outside of [-len, len)
	// after every item the lookup needed has been pulled.
	ErrIndexOutOfRange errorkit.Error = "lazykit: index out of range"
	// ErrMalformedSlice is returned for slice bounds that can't describe a slice,
	// such as a zero step or a non-integer bound in a slice expression,
	// and for WithStorage or WithEqual options made for another item type.
	ErrMalformedSlice errorkit.Error = "lazykit: malformed slice"
	// ErrReleased is returned by every operation on a Sequence after Release or Close.
	ErrReleased errorkit.Error = "lazykit: sequence is released"
)
