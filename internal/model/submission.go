package model

import "time"

// Submission 一次答卷，追加写入后不再变更
// swagger:model Submission
type Submission struct {
	UUIDBase
	QuizID         string    `gorm:"index;type:varchar(12)" json:"quizId"`
	RespondentName string    `gorm:"size:255" json:"respondentName"`
	TotalScore     float64   `gorm:"not null" json:"totalScore"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionAnswer 单题的原始回答与加权得分
// swagger:model SubmissionAnswer
type SubmissionAnswer struct {
	BaseModel
	SubmissionID string  `gorm:"index;type:varchar(36)" json:"submissionId"`
	Position     int     `gorm:"not null" json:"position"` // 与题目输入顺序一致
	Prompt       string  `gorm:"type:text" json:"prompt"`
	Answer       string  `gorm:"type:text" json:"answer"`
	Score        float64 `gorm:"not null" json:"score"`
}

func (SubmissionAnswer) TableName() string {
	return "submission_answers"
}
