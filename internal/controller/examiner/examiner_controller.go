package examiner

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

type ExaminerController struct {
	examSvc        service.ExamService
	leaderboardSvc service.LeaderboardService
}

func NewExaminerController(examSvc service.ExamService, leaderboardSvc service.LeaderboardService) *ExaminerController {
	return &ExaminerController{examSvc: examSvc, leaderboardSvc: leaderboardSvc}
}

// CreateExam godoc
// @Summary Create an exam with its question set
// @Tags examiner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam with questions"
// @Success 201 {object} dto.ExamDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /examiner/exams [post]
func (ctrl *ExaminerController) CreateExam(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	exam, err := ctrl.examSvc.CreateExam(identity.UserID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	log.Info().Uint("examiner_id", identity.UserID).Uint("exam_id", exam.ID).Msg("Exam created")
	c.JSON(http.StatusCreated, exam)
}

// PublishExam godoc
// @Summary Publish an exam, making it available to students
// @Tags examiner
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /examiner/exams/{exam_id}/publish [post]
func (ctrl *ExaminerController) PublishExam(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	exam, err := ctrl.examSvc.PublishExam(identity.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exam)
}

// ListMyExams godoc
// @Summary List the authenticated examiner's exams
// @Tags examiner
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExamSummaryResponse
// @Router /examiner/exams [get]
func (ctrl *ExaminerController) ListMyExams(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	exams, err := ctrl.examSvc.ListMyExams(identity.UserID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exams)
}

// GetExamPreview godoc
// @Summary Get an exam with its questions, including correct options
// @Tags examiner
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /examiner/exams/{exam_id} [get]
func (ctrl *ExaminerController) GetExamPreview(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	exam, err := ctrl.examSvc.GetExamPreview(identity.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exam)
}

// GetLeaderboard godoc
// @Summary Rank students on an exam
// @Tags examiner
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param limit query int false "Maximum entries (default 10)"
// @Success 200 {array} dto.LeaderboardEntryResponse
// @Router /examiner/exams/{exam_id}/leaderboard [get]
func (ctrl *ExaminerController) GetLeaderboard(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries, err := ctrl.leaderboardSvc.Rank(examID, limit)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetAnalytics godoc
// @Summary Get results and summary statistics for an exam
// @Tags examiner
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamAnalyticsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /examiner/exams/{exam_id}/analytics [get]
func (ctrl *ExaminerController) GetAnalytics(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	analytics, err := ctrl.leaderboardSvc.Analytics(identity.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: "validation", Error: "invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
