package http

import "strconv"

// StatusCode is an HTTP response status number
type StatusCode int

// Known status codes
const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusNoContent           StatusCode = 204
	StatusMovedPermanently    StatusCode = 301
	StatusFound               StatusCode = 302
	StatusNotModified         StatusCode = 304
	StatusTemporaryRedirect   StatusCode = 307
	StatusPermanentRedirect   StatusCode = 308
	StatusBadRequest          StatusCode = 400
	StatusUnauthorized        StatusCode = 401
	StatusPaymentRequired     StatusCode = 402
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusTooManyRequests     StatusCode = 429
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusServiceUnavailable  StatusCode = 503
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusNoContent:           "No Content",
	StatusMovedPermanently:    "Moved Permanently",
	StatusFound:               "Found",
	StatusNotModified:         "Not Modified",
	StatusTemporaryRedirect:   "Temporary Redirect",
	StatusPermanentRedirect:   "Permanent Redirect",
	StatusBadRequest:          "Bad Request",
	StatusUnauthorized:        "Unauthorized",
	StatusPaymentRequired:     "Payment Required",
	StatusForbidden:           "Forbidden",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusTooManyRequests:     "Too Many Requests",
	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
	StatusServiceUnavailable:  "Service Unavailable",
}

// ParseStatus maps a number back to a known StatusCode
func ParseStatus(code int) (StatusCode, bool) {
	s := StatusCode(code)
	_, ok := reasonPhrases[s]
	return s, ok
}

// Reason returns the canonical reason phrase, or "" for unknown numbers
func Reason(code int) string {
	return reasonPhrases[StatusCode(code)]
}

// Reason returns the canonical reason phrase of s
func (s StatusCode) Reason() string {
	return reasonPhrases[s]
}

// String renders "404 Not Found"; unknown codes render the number alone
func (s StatusCode) String() string {
	if r := reasonPhrases[s]; r != "" {
		return strconv.Itoa(int(s)) + " " + r
	}
	return strconv.Itoa(int(s))
}
