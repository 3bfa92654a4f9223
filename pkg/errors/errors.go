package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeIdempotency  Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"

	// Ledger taxonomy. Every rejection a caller can trigger maps to one of these.
	CodeNotOwner         Code = "NOT_OWNER"
	CodeNotGuest         Code = "NOT_GUEST"
	CodeNotAdmin         Code = "NOT_ADMIN"
	CodeNotWhitelisted   Code = "NOT_WHITELISTED"
	CodeAlreadyUnlisted  Code = "ALREADY_UNLISTED"
	CodePropertyBooked   Code = "PROPERTY_BOOKED"
	CodePropertyInactive Code = "PROPERTY_INACTIVE"
	CodeAlreadyBooked    Code = "ALREADY_BOOKED"
	CodeInvalidRange     Code = "INVALID_RANGE"
	CodeWrongPayment     Code = "WRONG_PAYMENT"
	CodeSettlementFailed Code = "SETTLEMENT_FAILED"
	CodeUnknownProperty  Code = "UNKNOWN_PROPERTY"
)

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		HTTPStatus:     http.StatusUnauthorized,
		Retryable:      false,
		PublicMessage:  "authentication required",
		DetailsAllowed: false,
	},
	CodeIdempotency: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "idempotency key reused",
		DetailsAllowed: true,
	},
	CodeRateLimit: {
		HTTPStatus:     http.StatusTooManyRequests,
		Retryable:      false,
		PublicMessage:  "rate limit exceeded",
		DetailsAllowed: false,
	},
	CodeInternal: {
		HTTPStatus:     http.StatusInternalServerError,
		Retryable:      true,
		PublicMessage:  "internal server error",
		DetailsAllowed: false,
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
	},
	CodeNotOwner: {
		HTTPStatus:     http.StatusForbidden,
		Retryable:      false,
		PublicMessage:  "only the property owner may perform this operation",
		DetailsAllowed: false,
	},
	CodeNotGuest: {
		HTTPStatus:     http.StatusForbidden,
		Retryable:      false,
		PublicMessage:  "only the property guest may perform this operation",
		DetailsAllowed: false,
	},
	CodeNotAdmin: {
		HTTPStatus:     http.StatusForbidden,
		Retryable:      false,
		PublicMessage:  "only the ledger administrator may perform this operation",
		DetailsAllowed: false,
	},
	CodeNotWhitelisted: {
		HTTPStatus:     http.StatusForbidden,
		Retryable:      false,
		PublicMessage:  "caller is not whitelisted for booking",
		DetailsAllowed: false,
	},
	CodeAlreadyUnlisted: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "property is already unlisted",
		DetailsAllowed: true,
	},
	CodePropertyBooked: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "property has an active booking",
		DetailsAllowed: true,
	},
	CodePropertyInactive: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "property is no longer listed",
		DetailsAllowed: true,
	},
	CodeAlreadyBooked: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "property is already booked",
		DetailsAllowed: true,
	},
	CodeInvalidRange: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "booking range is invalid",
		DetailsAllowed: true,
	},
	CodeWrongPayment: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "payment does not match the rent owed",
		DetailsAllowed: true,
	},
	CodeSettlementFailed: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "settlement transfer failed",
		DetailsAllowed: true,
	},
	CodeUnknownProperty: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "property not found",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// HasCode reports whether err carries the given taxonomy code.
func HasCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
