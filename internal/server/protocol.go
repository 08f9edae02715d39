package server

import "fmt"

// messageType enumerates the client message kinds on the sync socket.
type messageType string

const (
	// messageTranscript asks where a transcript fragment sits in the script.
	messageTranscript messageType = "transcript"

	// messageCompare asks for similarity scores between a transcript
	// fragment and one candidate reference chunk.
	messageCompare messageType = "compare"

	// messageHighlight asks for a thresholded same-word verdict.
	messageHighlight messageType = "highlight"
)

// request is the envelope for every client → server message. Fields beyond
// Type and ID are populated per message kind.
type request struct {
	Type messageType `json:"type"`

	// ID is an optional client-chosen correlation value echoed back in the
	// response, letting the frontend pipeline multiple requests.
	ID string `json:"id,omitempty"`

	// Text is the transcript fragment for a "transcript" message.
	Text string `json:"text,omitempty"`

	// Transcript and Chunk are the comparison pair for a "compare" message.
	Transcript string `json:"transcript,omitempty"`
	Chunk      string `json:"chunk,omitempty"`

	// Word, Target, and Threshold parameterize a "highlight" message.
	// Threshold is a pointer so an absent value is distinguishable from a
	// deliberate 0.0.
	Word      string   `json:"word,omitempty"`
	Target    string   `json:"target,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// response is the envelope for every server → client message. Type is
// "position", "miss", "scores", "verdict", or "error"; exactly one of the
// payload pointers is set for payload-bearing types.
type response struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`

	Position *position `json:"position,omitempty"`
	Scores   *scores   `json:"scores,omitempty"`
	Similar  *bool     `json:"similar,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// position reports where a transcript fragment landed in the script.
type position struct {
	WindowID    int     `json:"window_id"`
	StartWord   int     `json:"start_word"`
	EndWord     int     `json:"end_word"`
	MatchedText string  `json:"matched_text"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
}

// scores carries the similarity signals for one compared pair.
type scores struct {
	Combined  float64 `json:"combined"`
	WordLevel float64 `json:"word_level"`
}

// errorResponse builds an error reply bound to the request's correlation ID.
func errorResponse(id, format string, args ...any) response {
	return response{
		Type:  "error",
		ID:    id,
		Error: fmt.Sprintf(format, args...),
	}
}
