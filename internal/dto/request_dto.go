package dto

// RegisterRequest creates a new student or examiner account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student examiner"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// QuestionCreateRequest is one MCQ within a CreateExamRequest.
type QuestionCreateRequest struct {
	QuestionText  string `json:"question_text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectOption int    `json:"correct_option" binding:"required,min=1,max=4"`
	QuestionOrder int    `json:"question_order" binding:"required,min=1"`
}

// CreateExamRequest carries the exam metadata and its full question set.
type CreateExamRequest struct {
	Title           string                  `json:"title" binding:"required"`
	Topic           string                  `json:"topic" binding:"required"`
	DifficultyLevel string                  `json:"difficulty_level" binding:"required,oneof=easy medium hard"`
	DurationMinutes int                     `json:"duration_minutes" binding:"required,min=1"`
	Questions       []QuestionCreateRequest `json:"questions" binding:"required,min=1,dive"`
}

// RecordAnswerRequest saves one selection against an open attempt.
type RecordAnswerRequest struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption int  `json:"selected_option" binding:"required,min=1,max=4"`
}

// SubmitAttemptRequest closes an attempt. Trigger "timeout" marks the
// submission as deadline-driven but gets no special treatment from the
// close guards.
type SubmitAttemptRequest struct {
	Trigger string `json:"trigger" binding:"omitempty,oneof=manual timeout"`
}
