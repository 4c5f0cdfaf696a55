package util

import "github.com/google/uuid"

// QuizTokenLength 分享链接中测验令牌的长度
const QuizTokenLength = 8

// GenerateQuizToken 生成不透明的短随机令牌，用作测验 ID
func GenerateQuizToken() string {
	return uuid.New().String()[:QuizTokenLength]
}
