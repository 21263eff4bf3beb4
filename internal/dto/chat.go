package dto

// AskResponse is the JSON body of POST /ask. Internal step failures are
// folded into Response rather than the HTTP status.
type AskResponse struct {
	Response string `json:"response"`
}
