package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"quizlink_backend/internal/config"
	"quizlink_backend/internal/model"
	"quizlink_backend/internal/quizbank"
	"quizlink_backend/internal/repository"
	"quizlink_backend/internal/util"
	"quizlink_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	Repo    *repository.QuizRepository
	Storage StorageProvider
	Cache   *QuestionCache
	Config  *config.Config
}

func NewQuizService(repo *repository.QuizRepository, storage StorageProvider, cache *QuestionCache, cfg *config.Config) *QuizService {
	return &QuizService{Repo: repo, Storage: storage, Cache: cache, Config: cfg}
}

// CreateQuiz 校验并发布一份测验：解析失败（缺列）时不存储任何内容，
// 成功时生成短令牌、按上传顺序存题目行并归档原始文件。
// 返回的 warnings 是被静默处理的题库作者错误，调用方用于提示。
func (s *QuizService) CreateQuiz(filename string, r io.Reader) (*model.Quiz, []quizbank.Warning, error) {
	maxBytes := s.Config.Quiz.MaxUploadBytes
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, nil, util.ErrUploadTooLarge
	}

	table, err := quizbank.ReadTable(bytes.NewReader(data), filename)
	if err != nil {
		return nil, nil, err
	}

	questions, warnings, err := quizbank.Parse(table)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, util.ErrEmptyUpload
	}

	quiz := &model.Quiz{
		ID:            util.GenerateQuizToken(),
		Title:         strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		QuestionCount: len(questions),
	}

	ext := strings.ToLower(filepath.Ext(filename))
	quiz.SourceFile = quiz.ID + "_questions" + ext

	rows := storageRows(table)
	if err := s.Repo.CreateQuizWithQuestions(quiz, rows); err != nil {
		return nil, nil, err
	}

	for _, w := range warnings {
		logger.Log.Warn("quiz author warning",
			zap.String("quiz_id", quiz.ID),
			zap.Int("row", w.Row),
			zap.String("warning", w.Message))
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "text/csv"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.Storage.Upload(ctx, quiz.SourceFile, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		// 归档失败不影响已创建的测验，题目行已入库
		logger.Log.Error("failed to archive question file", zap.String("quiz_id", quiz.ID), zap.Error(err))
	}

	return quiz, warnings, nil
}

// QuestionsForQuiz 返回解析后的题目序列，解析结果按内容哈希缓存
func (s *QuizService) QuestionsForQuiz(rows []model.QuizQuestion) ([]quizbank.Question, error) {
	hash := HashRows(rows)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if qs, ok := s.Cache.Get(ctx, hash); ok {
		return qs, nil
	}

	qs, _, err := quizbank.Parse(tableFromRows(rows))
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, hash, qs)
	return qs, nil
}

// RespondentQuestion 面向答题者的题目视图，不包含正确答案
type RespondentQuestion struct {
	Prompt  string                `json:"prompt"`
	Type    quizbank.QuestionType `json:"type"`
	Options []string              `json:"options,omitempty"`
	Weight  float64               `json:"weight"`
}

type RespondentQuizView struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	ExpiresAt time.Time            `json:"expiresAt"`
	Questions []RespondentQuestion `json:"questions"`
}

// GetQuizForRespondent 答题入口：过期和缺失都在解析之前拦截
func (s *QuizService) GetQuizForRespondent(id string) (*RespondentQuizView, error) {
	quiz, err := s.findActiveQuiz(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repo.ListQuestions(id)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuestionsForQuiz(rows)
	if err != nil {
		return nil, err
	}

	view := &RespondentQuizView{
		ID:        quiz.ID,
		Title:     quiz.Title,
		ExpiresAt: s.ExpiresAt(quiz),
		Questions: make([]RespondentQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		view.Questions = append(view.Questions, RespondentQuestion{
			Prompt:  q.Prompt,
			Type:    q.Type,
			Options: q.Options,
			Weight:  q.Weight,
		})
	}
	return view, nil
}

// GetQuizAdmin 管理端视图，含正确答案的原始定义行
func (s *QuizService) GetQuizAdmin(id string) (*model.Quiz, []model.QuizQuestion, error) {
	quiz, err := s.Repo.FindQuizByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuizNotFound
		}
		return nil, nil, err
	}
	rows, err := s.Repo.ListQuestions(id)
	return quiz, rows, err
}

func (s *QuizService) ListQuizzes(page, limit int) ([]repository.QuizListRow, int64, error) {
	return s.Repo.ListQuizzes(page, limit)
}

func (s *QuizService) DeleteQuiz(id string) error {
	quiz, err := s.Repo.FindQuizByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}

	rows, err := s.Repo.ListQuestions(id)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		s.Cache.Invalidate(ctx, HashRows(rows))
		cancel()
	}

	if err := s.Repo.DeleteQuiz(id); err != nil {
		return err
	}

	if quiz.SourceFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Storage.Delete(ctx, quiz.SourceFile)
	}
	return nil
}

// ExpiresAt 链接失效时间：创建时间加配置的有效天数
func (s *QuizService) ExpiresAt(quiz *model.Quiz) time.Time {
	days := s.Config.Quiz.ExpiryDays
	if days <= 0 {
		days = 7
	}
	return quiz.CreatedAt.Add(time.Duration(days) * 24 * time.Hour)
}

func (s *QuizService) findActiveQuiz(id string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindQuizByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if time.Now().After(s.ExpiresAt(quiz)) {
		return nil, util.ErrQuizExpired
	}
	return quiz, nil
}

// storageRows 把归一化表格转成按位置存储的定义行，单元格保持上传原文
func storageRows(t quizbank.Table) []model.QuizQuestion {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		idx[c] = i
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rows := make([]model.QuizQuestion, 0, len(t.Rows))
	for i, row := range t.Rows {
		rows = append(rows, model.QuizQuestion{
			Position:       i,
			Prompt:         cell(row, quizbank.ColPrompt),
			Type:           cell(row, quizbank.ColType),
			Options:        cell(row, quizbank.ColOptions),
			CorrectAnswers: cell(row, quizbank.ColCorrect),
			Weight:         cell(row, quizbank.ColWeight),
		})
	}
	return rows
}

// tableFromRows 从存储的定义行还原表格，保证每次解析输入一致
func tableFromRows(rows []model.QuizQuestion) quizbank.Table {
	t := quizbank.Table{
		Columns: []string{quizbank.ColPrompt, quizbank.ColType, quizbank.ColOptions, quizbank.ColCorrect, quizbank.ColWeight},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Prompt, r.Type, r.Options, r.CorrectAnswers, r.Weight})
	}
	return t
}
