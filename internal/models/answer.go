package models

// AnswerRecord is the outcome of one submitted question within a session.
type AnswerRecord struct {
	QuestionID    string `json:"question_id"`
	SelectedIndex int    `json:"selected_index"`
	Correct       bool   `json:"correct"`
	PointsAwarded int    `json:"points_awarded"`
}

// CountCorrect returns how many records were answered correctly.
func CountCorrect(records []AnswerRecord) int {
	count := 0
	for _, r := range records {
		if r.Correct {
			count++
		}
	}
	return count
}
