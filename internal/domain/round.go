package domain

type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// RoundResult is a single wheel draw.
type RoundResult struct {
	Number int   `json:"number"`
	Color  Color `json:"color"`
}

// Session is the in-memory state of one sitting at the table.
type Session struct {
	Money  int64
	Bet    int64
	Rounds int
	Again  bool
}
