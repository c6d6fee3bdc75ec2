package utils

// ResponseData is the envelope used by the administrative endpoints.
// Status only selects the HTTP status and is not serialized.
type ResponseData struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status int    `json:"-"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// MessageResponse acknowledges a write that has nothing else to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// PanicIfNeeded hands err to the recovery middleware.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
