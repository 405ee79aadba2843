package model

// Question is one multiple-choice item of a quiz bank.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct"`
	Hint         string   `json:"hint,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// HasHint reports whether the question defines a hint.
func (q Question) HasHint() bool {
	return q.Hint != ""
}

// QuizBank is a named, fixed-size sequence of questions.
type QuizBank struct {
	ID        string     `json:"id"`
	Size      int        `json:"size"`
	Questions []Question `json:"questions"`
}

// QuizBankSummary is the public description of a bank used by size selection.
type QuizBankSummary struct {
	ID    string `json:"id"`
	Size  int    `json:"size"`
	Label string `json:"label"`
}

// PublicQuestion is a question without its answer key or explanation.
type PublicQuestion struct {
	Position int      `json:"position"`
	Text     string   `json:"question"`
	Options  []string `json:"options"`
	HasHint  bool     `json:"has_hint"`
}

// QuizBankDetail is returned by the bank lookup endpoint.
type QuizBankDetail struct {
	QuizBankSummary
	Questions []PublicQuestion `json:"questions"`
}

// QuizBankURI binds the bank id path parameter.
type QuizBankURI struct {
	BankID string `uri:"bank_id" binding:"required,startswith=quiz,max=16"`
}
