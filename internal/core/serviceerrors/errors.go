package serviceerrors

import "errors"

type ErrorKind int

const (
	KindStockExceeded ErrorKind = iota
	KindAddFailed
	KindRemoveFailed
	KindUpdateFailed
	KindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindStockExceeded:
		return "stock_exceeded"
	case KindAddFailed:
		return "add_failed"
	case KindRemoveFailed:
		return "remove_failed"
	case KindUpdateFailed:
		return "update_failed"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

const (
	MessageStockExceeded = "requested quantity exceeds stock"
	MessageAddFailed     = "failed to add product"
	MessageRemoveFailed  = "failed to remove product"
	MessageUpdateFailed  = "failed to update quantity"
)

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

// ServiceError carries a user facing Message; Err is the underlying cause, if any.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewStockExceededError() *ServiceError {
	return &ServiceError{Kind: KindStockExceeded, Message: MessageStockExceeded}
}

func NewAddFailedError(cause error) *ServiceError {
	return &ServiceError{Kind: KindAddFailed, Message: MessageAddFailed, Err: cause}
}

func NewRemoveFailedError(cause error) *ServiceError {
	return &ServiceError{Kind: KindRemoveFailed, Message: MessageRemoveFailed, Err: cause}
}

func NewUpdateFailedError(cause error) *ServiceError {
	return &ServiceError{Kind: KindUpdateFailed, Message: MessageUpdateFailed, Err: cause}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

// UserMessage returns the message to show for err, falling back to fallback
// for errors that are not a ServiceError.
func UserMessage(err error, fallback string) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return fallback
}
