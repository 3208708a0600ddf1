package http

import (
	"errors"
	"strings"
)

// Method is an HTTP request method
type Method uint8

// Recognized request methods
const (
	MethodGET Method = iota + 1
	MethodPOST
	MethodPUT
	MethodDELETE
	MethodPATCH
	MethodUPDATE
	MethodCONFIG
	MethodHEAD
	MethodOPTIONS
	MethodTRACE
	MethodCONNECT
)

var methodNames = [...]string{
	MethodGET:     "GET",
	MethodPOST:    "POST",
	MethodPUT:     "PUT",
	MethodDELETE:  "DELETE",
	MethodPATCH:   "PATCH",
	MethodUPDATE:  "UPDATE",
	MethodCONFIG:  "CONFIG",
	MethodHEAD:    "HEAD",
	MethodOPTIONS: "OPTIONS",
	MethodTRACE:   "TRACE",
	MethodCONNECT: "CONNECT",
}

// ErrUnknownMethod is matched by every UnknownMethodError
var ErrUnknownMethod = errors.New("unknown HTTP method")

// UnknownMethodError reports a request-line method token outside the known set
type UnknownMethodError struct {
	Token string
}

func (e *UnknownMethodError) Error() string {
	return "unknown HTTP method: " + e.Token
}

// Is makes errors.Is(err, ErrUnknownMethod) hold
func (e *UnknownMethodError) Is(target error) bool {
	return target == ErrUnknownMethod
}

// ParseMethod parses a method token case-insensitively
func ParseMethod(token string) (Method, error) {
	for m := MethodGET; m <= MethodCONNECT; m++ {
		if strings.EqualFold(methodNames[m], token) {
			return m, nil
		}
	}
	return 0, &UnknownMethodError{Token: token}
}

// String returns the canonical upper-case token
func (m Method) String() string {
	if m >= MethodGET && m <= MethodCONNECT {
		return methodNames[m]
	}
	return ""
}

// Valid reports whether m belongs to the known set
func (m Method) Valid() bool {
	return m >= MethodGET && m <= MethodCONNECT
}
