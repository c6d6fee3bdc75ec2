package error

import "net/http"

// UnavailableError is returned by write paths when the store is disconnected.
type UnavailableError string

func (err UnavailableError) Error() string {
	return string(err)
}

func (err UnavailableError) ErrCode() string {
	return "SERVICE_UNAVAILABLE"
}

func (err UnavailableError) StatusCode() int {
	return http.StatusServiceUnavailable
}
