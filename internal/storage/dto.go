package storage

// Log defines the structure of records storing in Storage as log of intercepted requests
type Log struct {
	URL                string              `json:"url"`
	Method             string              `json:"method"`
	Headers            map[string][]string `json:"headers"`
	Outcome            string              `json:"outcome"`
	MockPath           string              `json:"mock_path,omitempty"`
	ResponseStatusCode int                 `json:"response_status_code"`
	RequestPayload     *string             `json:"request_payload"`
	ResponsePayload    *string             `json:"response_payload"`
}
