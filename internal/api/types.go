package api

// Problem is one catalog entry describing a coding exercise.
// The server owns the hidden test cases; they are never sent to the client.
type Problem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Difficulty  string `json:"difficulty"` // Easy | Medium | Hard
	Description string `json:"description"`
	Language    string `json:"language"`
}

// Submission is one attempt to run code against a problem's hidden tests.
// Built fresh per submit action and not retained afterwards.
type Submission struct {
	Code      string `json:"code"`
	Language  string `json:"language"`
	ProblemID int    `json:"problem_id"`
}

// TestResult is a single hidden test case's outcome.
type TestResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual,omitempty"`
	Passed   bool   `json:"passed"`
	Error    string `json:"error,omitempty"`
}

// ResultSet is the structured outcome of one submission.
type ResultSet struct {
	AllPassed bool         `json:"all_passed"`
	Results   []TestResult `json:"results"`
}

// StatsSummary holds aggregate and per-difficulty solve counts.
// Missing difficulty keys are treated as zero by the stats package.
type StatsSummary struct {
	Passed          int            `json:"passed"`
	Failed          int            `json:"failed"`
	DifficultyStats map[string]int `json:"difficulty_stats"`
}

// assistantRequest is the voice-assistant request body.
type assistantRequest struct {
	Text string `json:"text"`
}

// assistantResponse is the voice-assistant reply payload.
type assistantResponse struct {
	Response string `json:"response"`
}
