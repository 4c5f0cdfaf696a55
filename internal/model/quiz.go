package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz 一份已发布的测验。ID 是分享链接中使用的 8 位随机令牌，
// CreatedAt 同时作为链接有效期的起点。
// swagger:model Quiz
type Quiz struct {
	ID            string         `gorm:"primaryKey;type:varchar(12)" json:"id"`
	Title         string         `gorm:"size:255" json:"title"`
	SourceFile    string         `gorm:"size:255" json:"sourceFile"` // 归档的原始上传文件
	QuestionCount int            `gorm:"default:0" json:"questionCount"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion 题库的原始定义行，按上传顺序存储。
// 字段保持上传时的原文，展示和评分前由 quizbank 统一解析。
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID         string `gorm:"index;type:varchar(12)" json:"quizId"`
	Position       int    `gorm:"not null" json:"position"` // 输入顺序，从 0 开始
	Prompt         string `gorm:"type:text" json:"prompt"`
	Type           string `gorm:"size:20" json:"type"` // mc | open
	Options        string `gorm:"type:text" json:"options"`
	CorrectAnswers string `gorm:"type:text" json:"correctAnswers"`
	Weight         string `gorm:"size:32" json:"weight"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
