package rag

// EmployeeContext identifies who is asking, so the model never has to re-ask.
type EmployeeContext struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Country      string `json:"country"`
	LeaveBalance int    `json:"leaveBalance"`
}

// AnswerRequest is a single chat turn.
type AnswerRequest struct {
	Message  string          `json:"message"`
	Employee EmployeeContext `json:"employee"`
}

// Source points at a retrieved chunk that grounded the answer.
type Source struct {
	DocumentID string  `json:"documentId"`
	Filename   string  `json:"filename"`
	Score      float32 `json:"score"`
}

// AnswerResponse is the assistant's final text plus the chunks it saw.
type AnswerResponse struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}
