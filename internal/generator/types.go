package generator

// exercisesOutput is the raw LLM response before validation.
type exercisesOutput struct {
	Exercises []Draft `json:"exercises"`
}

// Draft is one exercise as produced by the model. Text uses "___" for
// each blank; answers refer to blanks by zero-based position.
type Draft struct {
	Text    string        `json:"exercise"`
	Answers []DraftAnswer `json:"answers"`
	Hints   []DraftHint   `json:"hints"`
}

// DraftAnswer is one accepted answer for a blank. Several answers may share
// a position.
type DraftAnswer struct {
	Position    int    `json:"position"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`

	// BaseForm is the dictionary form of the answer, e.g. "ir" for "fui".
	BaseForm string `json:"baseForm"`
}

// DraftHint is a progressive hint. Lower evidence is revealed first.
type DraftHint struct {
	Evidence int    `json:"evidence"`
	Hint     string `json:"hint"`
}
