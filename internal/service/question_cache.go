package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"quizlink_backend/internal/model"
	"quizlink_backend/internal/quizbank"

	"github.com/go-redis/redis/v8"
)

const questionCachePrefix = "quizbank:questions:"

// QuestionCache 解析结果的显式缓存，键为题目定义行的内容哈希。
// 题库内容变化时键自然失效，删除测验时显式清除。
// 缓存只是优化，任何失败都回退到重新解析。
type QuestionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQuestionCache(rdb *redis.Client, ttl time.Duration) *QuestionCache {
	return &QuestionCache{rdb: rdb, ttl: ttl}
}

// HashRows 计算题目定义行的内容哈希，行序参与哈希
func HashRows(rows []model.QuizQuestion) string {
	h := sha256.New()
	for _, r := range rows {
		h.Write([]byte(r.Prompt))
		h.Write([]byte{0})
		h.Write([]byte(r.Type))
		h.Write([]byte{0})
		h.Write([]byte(r.Options))
		h.Write([]byte{0})
		h.Write([]byte(r.CorrectAnswers))
		h.Write([]byte{0})
		h.Write([]byte(r.Weight))
		h.Write([]byte{0xff})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *QuestionCache) Get(ctx context.Context, hash string) ([]quizbank.Question, bool) {
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, questionCachePrefix+hash).Bytes()
	if err != nil {
		return nil, false
	}
	var qs []quizbank.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, false
	}
	return qs, true
}

func (c *QuestionCache) Set(ctx context.Context, hash string, qs []quizbank.Question) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(qs)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, questionCachePrefix+hash, data, c.ttl)
}

func (c *QuestionCache) Invalidate(ctx context.Context, hash string) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, questionCachePrefix+hash)
}
