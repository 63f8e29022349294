package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/repository"
)

// DefaultLeaderboardLimit caps the ranking when the caller does not ask
// for a specific size.
const DefaultLeaderboardLimit = 10

// LeaderboardService derives rankings and summary statistics from the
// Result set of an exam. Read-only.
type LeaderboardService interface {
	// Rank orders by percentage descending, elapsed time ascending (faster
	// completion wins ties), then evaluation timestamp ascending.
	Rank(examID uint, limit int) ([]dto.LeaderboardEntryResponse, error)
	Summarize(examID uint) (*dto.ExamStatisticsResponse, error)
	Analytics(examinerID, examID uint) (*dto.ExamAnalyticsResponse, error)
}

type leaderboardService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
}

func NewLeaderboardService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository) LeaderboardService {
	return &leaderboardService{examRepo: examRepo, resultRepo: resultRepo}
}

func (s *leaderboardService) Rank(examID uint, limit int) ([]dto.LeaderboardEntryResponse, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	rows, err := s.resultRepo.RankByExam(examID, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.LeaderboardEntryResponse, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, dto.LeaderboardEntryResponse{
			Rank:             i + 1,
			StudentName:      row.StudentName,
			StudentEmail:     row.StudentEmail,
			Score:            row.Score,
			Percentage:       fmt.Sprintf("%.2f", row.Percentage),
			TimeTakenSeconds: row.TimeTakenSeconds,
		})
	}
	return entries, nil
}

func (s *leaderboardService) Summarize(examID uint) (*dto.ExamStatisticsResponse, error) {
	results, err := s.resultRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	stats := &dto.ExamStatisticsResponse{
		TotalAttempts:     len(results),
		AverageScore:      "0.00",
		AveragePercentage: "0.00",
	}
	if len(results) == 0 {
		return stats, nil
	}
	var scoreSum, percentageSum float64
	for _, result := range results {
		scoreSum += float64(result.Score)
		percentageSum += result.Percentage
	}
	stats.AverageScore = fmt.Sprintf("%.2f", scoreSum/float64(len(results)))
	stats.AveragePercentage = fmt.Sprintf("%.2f", percentageSum/float64(len(results)))
	return stats, nil
}

func (s *leaderboardService) Analytics(examinerID, examID uint) (*dto.ExamAnalyticsResponse, error) {
	exam, err := s.examRepo.FindByIDForExaminer(examID, examinerID)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	stats, err := s.Summarize(examID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExamAnalyticsResponse{Statistics: *stats}
	if err := copier.Copy(&resp.Exam, exam); err != nil {
		return nil, err
	}
	resp.Results = make([]dto.ResultResponse, 0, len(results))
	for _, result := range results {
		resp.Results = append(resp.Results, ResultToDTO(&result))
	}
	return resp, nil
}
