package models

type SessionState string

const (
	SessionIdle               SessionState = "idle"
	SessionShowingQuestion    SessionState = "showing_question"
	SessionShowingExplanation SessionState = "showing_explanation"
	SessionCompleted          SessionState = "completed"
)

// InProgress reports whether the state belongs to an active play-through.
func (s SessionState) InProgress() bool {
	return s == SessionShowingQuestion || s == SessionShowingExplanation
}

// QuestionView is what the player sees of a question. The answer and
// explanation are only filled in once the explanation is visible.
type QuestionView struct {
	ID                 string       `json:"id"`
	Text               string       `json:"text"`
	Type               QuestionType `json:"type"`
	Options            []string     `json:"options"`
	Points             int          `json:"points"`
	CorrectAnswerIndex *int         `json:"correct_answer_index,omitempty"`
	Explanation        string       `json:"explanation,omitempty"`
}

// NewQuestionView builds the player-facing view of q.
func NewQuestionView(q *Question, reveal bool) *QuestionView {
	view := &QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Type:    q.Type,
		Options: append([]string(nil), q.Options...),
		Points:  q.Points,
	}
	if reveal {
		view.CorrectAnswerIndex = intPtr(q.CorrectAnswerIndex)
		view.Explanation = q.Explanation
	}
	return view
}

// SessionSnapshot is the observable state of the session engine.
type SessionSnapshot struct {
	SessionID           string        `json:"session_id,omitempty"`
	State               SessionState  `json:"state"`
	QuizID              string        `json:"quiz_id,omitempty"`
	QuizTitle           string        `json:"quiz_title,omitempty"`
	Question            *QuestionView `json:"question,omitempty"`
	QuestionIndex       int           `json:"question_index"`
	TotalQuestions      int           `json:"total_questions"`
	ProgressFraction    float64       `json:"progress_fraction"`
	IsLastQuestion      bool          `json:"is_last_question"`
	SelectedAnswerIndex *int          `json:"selected_answer_index,omitempty"`
	ExplanationVisible  bool          `json:"explanation_visible"`
	LastAnswerCorrect   *bool         `json:"last_answer_correct,omitempty"`
	Score               int           `json:"score"`
	RemainingSeconds    int           `json:"remaining_seconds"`
	Completed           bool          `json:"completed"`
}

// IdleSnapshot is the snapshot of an engine with no session.
func IdleSnapshot() SessionSnapshot {
	return SessionSnapshot{State: SessionIdle}
}

// CloneSelected copies the selection pointer so snapshots never alias engine state.
func CloneSelected(selected *int) *int {
	if selected == nil {
		return nil
	}
	return intPtr(*selected)
}
