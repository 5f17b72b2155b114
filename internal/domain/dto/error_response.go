package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
//
// The "error" key is always present; "details" carries internal error
// text only when the server is configured to expose it.
type ErrorResponse struct {
	Message      string    `json:"error" example:"no data found for NASDAQ:AAPL"`
	ErrorDetails string    `json:"details,omitempty" example:"tradingview api error 502: Bad Gateway"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// A nil err leaves ErrorDetails empty.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
