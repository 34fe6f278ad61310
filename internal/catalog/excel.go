package catalog

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/SAP-F-2025/quizzone/internal/errors"
	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/validator"
	"github.com/xuri/excelize/v2"
)

const (
	quizSheetName = "Quizzes"
	maxOptions    = 6
)

var quizHeaders = []string{
	"Quiz ID", "Quiz Title", "Category", "Difficulty", "Estimated Minutes", "Description",
	"Question ID", "Question Type", "Question Text",
	"Option A", "Option B", "Option C", "Option D", "Option E", "Option F",
	"Correct Answer", "Points", "Explanation",
}

// ===== EXPORT =====

// ExportQuizzesToExcel writes one row per question, repeating the quiz columns.
func ExportQuizzesToExcel(quizzes []models.Quiz) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quizSheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	for i, header := range quizHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		f.SetCellValue(quizSheetName, cell, header)
	}

	rowIndex := 2
	for _, quiz := range quizzes {
		for _, question := range quiz.Questions {
			row := questionToRow(&quiz, &question)
			for colIndex, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex)
				if err != nil {
					return nil, fmt.Errorf("failed to resolve cell: %w", err)
				}
				f.SetCellValue(quizSheetName, cell, value)
			}
			rowIndex++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func questionToRow(quiz *models.Quiz, question *models.Question) []string {
	row := []string{
		quiz.ID,
		quiz.Title,
		string(quiz.Category),
		string(quiz.Difficulty),
		strconv.Itoa(quiz.EstimatedTimeMinutes),
		quiz.Description,
		question.ID,
		string(question.Type),
		question.Text,
	}
	for i := 0; i < maxOptions; i++ {
		if i < len(question.Options) {
			row = append(row, question.Options[i])
		} else {
			row = append(row, "")
		}
	}
	return append(row,
		optionLetter(question.CorrectAnswerIndex),
		strconv.Itoa(question.Points),
		question.Explanation,
	)
}

func optionLetter(index int) string {
	if index < 0 || index >= maxOptions {
		return ""
	}
	return string(rune('A' + index))
}

func parseOptionLetter(value string) (int, bool) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if len(value) != 1 {
		return 0, false
	}
	index := int(value[0] - 'A')
	if index < 0 || index >= maxOptions {
		return 0, false
	}
	return index, true
}

// ===== IMPORT =====

// ImportQuizzesFromExcel reads quizzes from the first sheet of an xlsx file.
// Invalid rows and quizzes are reported in the result and skipped.
func ImportQuizzesFromExcel(reader io.Reader, v *validator.Validator) (*models.ImportResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, apperrors.NewValidationError("file", "Excel must have header row and at least one data row", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}

	result := &models.ImportResult{
		TotalRows: len(rows) - 1,
		Status:    models.ImportProcessing,
	}

	var quizzes []*models.Quiz
	byID := make(map[string]*models.Quiz)

	for rowIndex, row := range rows[1:] {
		rowNum := rowIndex + 2
		result.ProcessedRows++

		quiz, question, rowErrors := parseRow(row, headerMap, rowNum)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorCount++
			continue
		}

		existing, ok := byID[quiz.ID]
		if !ok {
			existing = quiz
			byID[quiz.ID] = existing
			quizzes = append(quizzes, existing)
		}
		existing.Questions = append(existing.Questions, *question)
		result.SuccessCount++
	}

	for _, quiz := range quizzes {
		if v != nil {
			if err := v.Validate(quiz); err != nil {
				result.Errors = append(result.Errors, models.ImportValidationError{
					Column:  "quiz id",
					Message: err.Error(),
					Value:   quiz.ID,
				})
				continue
			}
		}
		result.Quizzes = append(result.Quizzes, *quiz)
	}

	result.Status = models.ImportCompleted
	if len(result.Quizzes) == 0 {
		result.Status = models.ImportValidationFailed
	}

	return result, nil
}

func cellValue(row []string, headerMap map[string]int, header string) string {
	i, ok := headerMap[strings.ToLower(header)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, headerMap map[string]int, rowNum int) (*models.Quiz, *models.Question, []models.ImportValidationError) {
	var errs []models.ImportValidationError
	addErr := func(column, message, value string) {
		errs = append(errs, models.ImportValidationError{Row: rowNum, Column: column, Message: message, Value: value})
	}

	quiz := &models.Quiz{
		ID:          cellValue(row, headerMap, "quiz id"),
		Title:       cellValue(row, headerMap, "quiz title"),
		Category:    models.QuizCategory(cellValue(row, headerMap, "category")),
		Difficulty:  models.DifficultyLevel(cellValue(row, headerMap, "difficulty")),
		Description: cellValue(row, headerMap, "description"),
	}
	if quiz.ID == "" {
		addErr("quiz id", "is required", "")
	}
	if !quiz.Category.IsValid() {
		addErr("category", "must be Finance, Entertainment, Mixed, or Puzzle", string(quiz.Category))
	}
	if !quiz.Difficulty.IsValid() {
		addErr("difficulty", "must be Easy, Medium, or Hard", string(quiz.Difficulty))
	}
	if minutes := cellValue(row, headerMap, "estimated minutes"); minutes != "" {
		n, err := strconv.Atoi(minutes)
		if err != nil {
			addErr("estimated minutes", "must be a number", minutes)
		}
		quiz.EstimatedTimeMinutes = n
	}

	question := &models.Question{
		ID:          cellValue(row, headerMap, "question id"),
		Type:        models.QuestionType(cellValue(row, headerMap, "question type")),
		Text:        cellValue(row, headerMap, "question text"),
		Explanation: cellValue(row, headerMap, "explanation"),
	}
	if question.ID == "" {
		question.ID = fmt.Sprintf("%s-row-%d", quiz.ID, rowNum)
	}
	if question.Type == "" {
		question.Type = models.MultipleChoice
	}
	if !question.Type.IsValid() {
		addErr("question type", "must be a valid question type", string(question.Type))
	}

	for i := 0; i < maxOptions; i++ {
		option := cellValue(row, headerMap, "option "+optionLetter(i))
		if option == "" {
			break
		}
		question.Options = append(question.Options, option)
	}
	if len(question.Options) < 2 {
		addErr("option b", "at least 2 options are required", strconv.Itoa(len(question.Options)))
	}

	answer := cellValue(row, headerMap, "correct answer")
	index, ok := parseOptionLetter(answer)
	if !ok || index >= len(question.Options) {
		addErr("correct answer", "must be the letter of one of the options", answer)
	}
	question.CorrectAnswerIndex = index

	points := cellValue(row, headerMap, "points")
	n, err := strconv.Atoi(points)
	if err != nil || n <= 0 {
		addErr("points", "must be a positive number", points)
	}
	question.Points = n

	return quiz, question, errs
}
