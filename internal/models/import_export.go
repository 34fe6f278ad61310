package models

type ImportStatus string

const (
	ImportProcessing       ImportStatus = "processing"
	ImportCompleted        ImportStatus = "completed"
	ImportValidationFailed ImportStatus = "validation_failed"
)

type ImportValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// ImportResult reports the outcome of loading quizzes from a spreadsheet.
type ImportResult struct {
	TotalRows     int                     `json:"total_rows"`
	ProcessedRows int                     `json:"processed_rows"`
	SuccessCount  int                     `json:"success_count"`
	ErrorCount    int                     `json:"error_count"`
	Status        ImportStatus            `json:"status"`
	Quizzes       []Quiz                  `json:"quizzes"`
	Errors        []ImportValidationError `json:"errors,omitempty"`
}
