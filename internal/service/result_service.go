package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"quizlink_backend/internal/grading"
	"quizlink_backend/internal/model"
	"quizlink_backend/internal/repository"
	"quizlink_backend/internal/util"
)

type ResultService struct {
	Repo    *repository.ResultRepository
	QuizSvc *QuizService
}

func NewResultService(repo *repository.ResultRepository, quizSvc *QuizService) *ResultService {
	return &ResultService{Repo: repo, QuizSvc: quizSvc}
}

type SubmissionReq struct {
	Name    string            `json:"name" binding:"required"`
	Answers map[string]string `json:"answers"` // prompt -> 原始回答，多选用 "|" 连接
}

type SubmissionResult struct {
	SubmissionID string             `json:"submissionId"`
	QuizID       string             `json:"quizId"`
	Scores       map[string]float64 `json:"scores"` // prompt -> 加权得分
	TotalScore   float64            `json:"totalScore"`
	SubmittedAt  time.Time          `json:"submittedAt"`
}

// Submit 评分并追加一条答卷。过期/缺失的测验在评分前拦截；
// 写入失败时整卷丢弃，不会落下部分数据。
func (s *ResultService) Submit(quizID string, req SubmissionReq) (*SubmissionResult, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, util.ErrNameRequired
	}

	if _, err := s.QuizSvc.findActiveQuiz(quizID); err != nil {
		return nil, err
	}

	rows, err := s.QuizSvc.Repo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuizSvc.QuestionsForQuiz(rows)
	if err != nil {
		return nil, err
	}

	scores, total := grading.Score(questions, req.Answers)

	now := time.Now()
	sub := &model.Submission{
		QuizID:         quizID,
		RespondentName: strings.TrimSpace(req.Name),
		TotalScore:     total,
		SubmittedAt:    now,
	}

	answers := make([]model.SubmissionAnswer, 0, len(questions))
	for i, q := range questions {
		answers = append(answers, model.SubmissionAnswer{
			Position: i,
			Prompt:   q.Prompt,
			Answer:   req.Answers[q.Prompt],
			Score:    scores[q.Prompt],
		})
	}

	if err := s.Repo.AppendSubmission(sub, answers); err != nil {
		return nil, err
	}

	return &SubmissionResult{
		SubmissionID: sub.ID,
		QuizID:       quizID,
		Scores:       scores,
		TotalScore:   total,
		SubmittedAt:  now,
	}, nil
}

type AnswerCell struct {
	Prompt string  `json:"prompt"`
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

type ResultRow struct {
	SubmissionID string       `json:"submissionId"`
	Name         string       `json:"name"`
	SubmittedAt  time.Time    `json:"submittedAt"`
	TotalScore   float64      `json:"totalScore"`
	Answers      []AnswerCell `json:"answers"`
}

// ListResults 管理端查看答卷。链接过期后结果仍然可查。
func (s *ResultService) ListResults(quizID string, page, limit int) ([]ResultRow, int64, error) {
	if _, _, err := s.QuizSvc.GetQuizAdmin(quizID); err != nil {
		return nil, 0, err
	}

	subs, total, err := s.Repo.ListSubmissions(quizID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	answers, err := s.Repo.ListAnswers(ids)
	if err != nil {
		return nil, 0, err
	}
	bySubmission := make(map[string][]AnswerCell, len(subs))
	for _, a := range answers {
		bySubmission[a.SubmissionID] = append(bySubmission[a.SubmissionID], AnswerCell{
			Prompt: a.Prompt,
			Answer: a.Answer,
			Score:  a.Score,
		})
	}

	rows := make([]ResultRow, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, ResultRow{
			SubmissionID: sub.ID,
			Name:         sub.RespondentName,
			SubmittedAt:  sub.SubmittedAt,
			TotalScore:   sub.TotalScore,
			Answers:      bySubmission[sub.ID],
		})
	}
	return rows, total, nil
}

// ExportCSV 导出某测验的全部答卷，列布局与旧版结果文件一致：
// Name, Time, Total, Q1 Answer, Q1 Score, ...
func (s *ResultService) ExportCSV(quizID string) ([][]string, string, error) {
	quiz, _, err := s.QuizSvc.GetQuizAdmin(quizID)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := s.ListResults(quizID, 0, 0)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", util.ErrNoResults
	}

	records := ResultCSVRecords(quiz.QuestionCount, rows)
	filename := fmt.Sprintf("quiz_%s_results.csv", quiz.ID)
	return records, filename, nil
}

// ResultCSVRecords 把答卷行展开成 CSV 记录。
// 逐题得分保留两位小数，总分写原始值，与旧版结果文件一致。
func ResultCSVRecords(questionCount int, rows []ResultRow) [][]string {
	header := []string{"Name", "Time", "Total"}
	for i := 1; i <= questionCount; i++ {
		header = append(header, fmt.Sprintf("Q%d Answer", i), fmt.Sprintf("Q%d Score", i))
	}

	records := [][]string{header}
	for _, row := range rows {
		rec := []string{
			row.Name,
			row.SubmittedAt.Format(time.RFC3339),
			strconv.FormatFloat(row.TotalScore, 'f', -1, 64),
		}
		for i := 0; i < questionCount; i++ {
			if i < len(row.Answers) {
				rec = append(rec, row.Answers[i].Answer, formatScore(row.Answers[i].Score))
			} else {
				rec = append(rec, "", "0")
			}
		}
		records = append(records, rec)
	}
	return records
}

func formatScore(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
