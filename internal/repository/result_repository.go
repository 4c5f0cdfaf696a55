package repository

import (
	"quizlink_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// AppendSubmission 追加一条答卷记录。整卷和逐题得分在一个事务里写入，
// 并发提交互不影响，失败时不会留下半行数据。
func (r *ResultRepository) AppendSubmission(sub *model.Submission, answers []model.SubmissionAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].SubmissionID = sub.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ResultRepository) ListSubmissions(quizID string, page, limit int) ([]model.Submission, int64, error) {
	var total int64
	query := r.DB.Model(&model.Submission{}).Where("quiz_id = ?", quizID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Submission
	dbQuery := r.DB.Where("quiz_id = ?", quizID).Order("submitted_at asc")
	if limit > 0 {
		offset := (page - 1) * limit
		dbQuery = dbQuery.Offset(offset).Limit(limit)
	}
	err := dbQuery.Find(&subs).Error
	return subs, total, err
}

// ListAnswers 返回一批答卷的逐题记录，按题目顺序排列
func (r *ResultRepository) ListAnswers(submissionIDs []string) ([]model.SubmissionAnswer, error) {
	if len(submissionIDs) == 0 {
		return nil, nil
	}
	var answers []model.SubmissionAnswer
	err := r.DB.Where("submission_id IN ?", submissionIDs).
		Order("submission_id asc, position asc").
		Find(&answers).Error
	return answers, err
}
