package api_error

// JSONAPIError is the body of every non-2xx response
type JSONAPIError struct {
	Code         string `json:"code"`
	Msg          string `json:"error"`
	ErrorDetails string `json:"error_details"`
}
