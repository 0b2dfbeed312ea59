package types

// Mode tells which path produced an answer.
type Mode string

const (
	ModeAI       Mode = "ai"
	ModeFallback Mode = "fallback"
)

// AnswerResult represents a query response
type AnswerResult struct {
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
	Query      string  `json:"query"`
	Source     string  `json:"source"`
	Mode       Mode    `json:"mode"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
