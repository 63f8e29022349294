package student

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/controller"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/middleware"
	"github.com/trnhan241/examguard/internal/service"
)

type StudentController struct {
	examSvc     service.ExamService
	attemptSvc  service.AttemptService
	responseSvc service.ResponseService
	scoringSvc  service.ScoringService
}

func NewStudentController(
	examSvc service.ExamService,
	attemptSvc service.AttemptService,
	responseSvc service.ResponseService,
	scoringSvc service.ScoringService,
) *StudentController {
	return &StudentController{
		examSvc:     examSvc,
		attemptSvc:  attemptSvc,
		responseSvc: responseSvc,
		scoringSvc:  scoringSvc,
	}
}

// ListAvailableExams godoc
// @Summary List published exams
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExamSummaryResponse
// @Router /exams [get]
func (ctrl *StudentController) ListAvailableExams(c *gin.Context) {
	exams, err := ctrl.examSvc.ListAvailableExams()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exams)
}

// StartAttempt godoc
// @Summary Start the single attempt for an exam
// @Description Creates the attempt with a randomized question order fixed for its lifetime. A second start for the same exam fails with a conflict.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/attempts [post]
func (ctrl *StudentController) StartAttempt(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	attempt, err := ctrl.attemptSvc.Start(identity.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	log.Info().Uint("student_id", identity.UserID).Uint("exam_id", examID).Uint("attempt_id", attempt.AttemptID).Msg("Attempt started")
	c.JSON(http.StatusCreated, attempt)
}

// RecordAnswer godoc
// @Summary Save an answer against an open attempt
// @Description Upserts the (attempt, question) row; retries and changed selections overwrite the previous answer.
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.RecordAnswerRequest true "Selection"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/answers [post]
func (ctrl *StudentController) RecordAnswer(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	attemptID, ok := pathID(c, "attempt_id")
	if !ok {
		return
	}
	var req dto.RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	if err := ctrl.responseSvc.RecordAnswer(identity.UserID, attemptID, req); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitAttempt godoc
// @Summary Close the attempt and score it
// @Description Performs the one-way transition to Submitted and evaluates the result exactly once. Equally correct for manual and timeout triggers.
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.SubmitAttemptRequest false "Close trigger"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/submit [post]
func (ctrl *StudentController) SubmitAttempt(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	attemptID, ok := pathID(c, "attempt_id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			controller.RespondBindError(c, err)
			return
		}
	}
	trigger := req.Trigger
	if trigger == "" {
		trigger = service.TriggerManual
	}

	if _, err := ctrl.attemptSvc.Close(identity.UserID, attemptID, trigger); err != nil {
		controller.RespondError(c, err)
		return
	}
	result, err := ctrl.scoringSvc.Evaluate(attemptID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	log.Info().Uint("attempt_id", attemptID).Str("trigger", trigger).Int("score", result.Score).Msg("Attempt submitted and scored")
	c.JSON(http.StatusOK, service.ResultToDTO(result))
}

// ReviewAttempt godoc
// @Summary Review the attempt's questions and recorded answers
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptReviewResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/review [get]
func (ctrl *StudentController) ReviewAttempt(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	attemptID, ok := pathID(c, "attempt_id")
	if !ok {
		return
	}
	review, err := ctrl.responseSvc.Review(identity.UserID, attemptID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// MyResults godoc
// @Summary List the authenticated student's results
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResultResponse
// @Router /results [get]
func (ctrl *StudentController) MyResults(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	results, err := ctrl.scoringSvc.MyResults(identity.UserID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetExamResult godoc
// @Summary Get the student's result for one exam
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/result [get]
func (ctrl *StudentController) GetExamResult(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	result, err := ctrl.scoringSvc.ExamResult(identity.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: "validation", Error: "invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
