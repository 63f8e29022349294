package dto

import "time"

// ErrorResponse is the structured failure payload: a machine-readable kind
// plus a human-readable message.
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ExamSummaryResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Topic           string     `json:"topic"`
	DifficultyLevel string     `json:"difficulty_level"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalQuestions  int        `json:"total_questions"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// QuestionResponse includes the correct option; examiner preview only.
type QuestionResponse struct {
	ID            uint   `json:"id"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption int    `json:"correct_option"`
	QuestionOrder int    `json:"question_order"`
}

type ExamDetailResponse struct {
	ExamSummaryResponse
	Questions []QuestionResponse `json:"questions"`
}

// StudentQuestionResponse never carries the correct option.
type StudentQuestionResponse struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
}

// StartAttemptResponse returns the questions in this attempt's randomized
// order.
type StartAttemptResponse struct {
	AttemptID uint                      `json:"attempt_id"`
	Exam      ExamSummaryResponse       `json:"exam"`
	Questions []StudentQuestionResponse `json:"questions"`
	StartTime time.Time                 `json:"start_time"`
}

type AttemptResponse struct {
	ID              uint       `json:"id"`
	ExamID          uint       `json:"exam_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	IsSubmitted     bool       `json:"is_submitted"`
	IsAutoSubmitted bool       `json:"is_auto_submitted"`
}

type ResultResponse struct {
	AttemptID        uint      `json:"attempt_id"`
	ExamID           uint      `json:"exam_id"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	Percentage       string    `json:"percentage"` // two decimal places, e.g. "60.00"
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	EvaluatedAt      time.Time `json:"evaluated_at"`
}

// ResponseReviewItem is one answered (or skipped) question in the
// post-submission review.
type ResponseReviewItem struct {
	QuestionID     uint      `json:"question_id"`
	QuestionText   string    `json:"question_text"`
	OptionA        string    `json:"option_a"`
	OptionB        string    `json:"option_b"`
	OptionC        string    `json:"option_c"`
	OptionD        string    `json:"option_d"`
	SelectedOption int       `json:"selected_option"`
	CorrectOption  int       `json:"correct_option"`
	IsCorrect      bool      `json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at"`
}

type AttemptReviewResponse struct {
	Attempt   AttemptResponse      `json:"attempt"`
	Responses []ResponseReviewItem `json:"responses"`
}

type LeaderboardEntryResponse struct {
	Rank             int    `json:"rank"`
	StudentName      string `json:"student_name"`
	StudentEmail     string `json:"student_email"`
	Score            int    `json:"score"`
	Percentage       string `json:"percentage"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

type ExamStatisticsResponse struct {
	TotalAttempts     int    `json:"total_attempts"`
	AverageScore      string `json:"average_score"`
	AveragePercentage string `json:"average_percentage"`
}

type ExamAnalyticsResponse struct {
	Exam       ExamSummaryResponse    `json:"exam"`
	Results    []ResultResponse       `json:"results"`
	Statistics ExamStatisticsResponse `json:"statistics"`
}
