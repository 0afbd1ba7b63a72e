package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeFetch            Code = "FETCH_ERROR"
	CodePersistenceRead  Code = "PERSISTENCE_READ_ERROR"
	CodePersistenceWrite Code = "PERSISTENCE_WRITE_ERROR"
	CodeInternal         Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable     bool
	UserVisible   bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:     false,
		UserVisible:   true,
		PublicMessage: "validation failed",
	},
	CodeFetch: {
		Retryable:     true,
		UserVisible:   true,
		PublicMessage: "Failed to fetch products. Please try again.",
	},
	CodePersistenceRead: {
		Retryable:     false,
		UserVisible:   false,
		PublicMessage: "cart could not be restored",
	},
	CodePersistenceWrite: {
		Retryable:     true,
		UserVisible:   false,
		PublicMessage: "cart could not be saved",
	},
	CodeInternal: {
		Retryable:     false,
		UserVisible:   false,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// PublicMessage returns the user-displayable message for the error's code.
func PublicMessage(err error) string {
	if typed := As(err); typed != nil {
		return MetadataFor(typed.Code()).PublicMessage
	}
	return MetadataFor(CodeInternal).PublicMessage
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
