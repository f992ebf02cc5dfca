package model

// Headline is a classified news headline supplied by the external
// classification collaborator. Published is kept verbatim because upstream
// feeds disagree on date formats.
type Headline struct {
	Title     string `json:"title"`
	EventType string `json:"event_type"`
	Sentiment string `json:"sentiment"`
	Sector    string `json:"sector"`
	Ticker    string `json:"ticker"`
	Source    string `json:"source"`
	Published string `json:"published"`
}

// MacroSnapshot maps macro indicator names to their latest values.
type MacroSnapshot map[string]float64

// Recognized macro snapshot keys.
const (
	MacroCPIActual   = "CPI_YoY"
	MacroCPIExpected = "CPI_Expected"
)
