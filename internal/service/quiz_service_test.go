package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"quizlink_backend/internal/config"
	"quizlink_backend/internal/model"
	"quizlink_backend/internal/quizbank"
)

func TestStorageRowsRoundTrip(t *testing.T) {
	original := quizbank.Table{
		Columns: []string{quizbank.ColPrompt, quizbank.ColType, quizbank.ColOptions, quizbank.ColCorrect, quizbank.ColWeight},
		Rows: [][]string{
			{"Pick colors", "mc", "Red; Green ;Blue", "1;3", "2"},
			{"Capital?", "open", "", "Paris", ""},
		},
	}

	rows := storageRows(original)
	restored := tableFromRows(rows)

	// 单元格保持上传原文，还原后的表格解析结果必须与首次解析一致
	first, _, err := quizbank.Parse(original)
	if err != nil {
		t.Fatalf("Parse original: %v", err)
	}
	second, _, err := quizbank.Parse(restored)
	if err != nil {
		t.Fatalf("Parse restored: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("round-trip changed parse result:\n%v\n%v", first, second)
	}
}

func TestStorageRowsColumnOrderIrrelevant(t *testing.T) {
	// 上传文件的列顺序任意，存储行按逻辑列取值
	shuffled := quizbank.Table{
		Columns: []string{quizbank.ColWeight, quizbank.ColCorrect, quizbank.ColPrompt, quizbank.ColType, quizbank.ColOptions},
		Rows: [][]string{
			{"2", "1", "Pick", "mc", "A;B"},
		},
	}

	rows := storageRows(shuffled)
	if rows[0].Prompt != "Pick" || rows[0].Weight != "2" || rows[0].Options != "A;B" {
		t.Errorf("rows = %+v", rows[0])
	}
}

func TestHashRows(t *testing.T) {
	rows := []model.QuizQuestion{
		{Prompt: "a", Type: "mc", Options: "X;Y", CorrectAnswers: "1", Weight: "1"},
		{Prompt: "b", Type: "open", CorrectAnswers: "yes"},
	}

	if HashRows(rows) != HashRows(rows) {
		t.Error("hash is not deterministic")
	}

	changed := []model.QuizQuestion{rows[0], {Prompt: "b", Type: "open", CorrectAnswers: "no"}}
	if HashRows(rows) == HashRows(changed) {
		t.Error("content change did not change hash")
	}

	reordered := []model.QuizQuestion{rows[1], rows[0]}
	if HashRows(rows) == HashRows(reordered) {
		t.Error("row order change did not change hash")
	}

	// 字段边界不能因拼接而混淆
	joined := []model.QuizQuestion{{Prompt: "ab", Type: "c"}}
	split := []model.QuizQuestion{{Prompt: "a", Type: "bc"}}
	if HashRows(joined) == HashRows(split) {
		t.Error("field boundary collision")
	}
}

func TestExpiresAt(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiryDays int
		want       time.Time
	}{
		{"configured window", 3, created.Add(3 * 24 * time.Hour)},
		{"default seven days", 7, created.Add(7 * 24 * time.Hour)},
		{"zero falls back to seven", 0, created.Add(7 * 24 * time.Hour)},
		{"negative falls back to seven", -1, created.Add(7 * 24 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &QuizService{Config: &config.Config{
				Quiz: config.QuizConfig{ExpiryDays: tt.expiryDays},
			}}
			quiz := &model.Quiz{ID: "abcd1234", CreatedAt: created}

			got := svc.ExpiresAt(quiz)
			if !got.Equal(tt.want) {
				t.Errorf("ExpiresAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpiresAtGatesRespondents(t *testing.T) {
	svc := &QuizService{Config: &config.Config{
		Quiz: config.QuizConfig{ExpiryDays: 7},
	}}

	fresh := &model.Quiz{ID: "abcd1234", CreatedAt: time.Now().Add(-24 * time.Hour)}
	if time.Now().After(svc.ExpiresAt(fresh)) {
		t.Error("one-day-old quiz reported expired inside a 7-day window")
	}

	stale := &model.Quiz{ID: "abcd1234", CreatedAt: time.Now().Add(-8 * 24 * time.Hour)}
	if !time.Now().After(svc.ExpiresAt(stale)) {
		t.Error("eight-day-old quiz reported active inside a 7-day window")
	}
}

func TestQuestionCacheDisabled(t *testing.T) {
	cache := NewQuestionCache(nil, 0)
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "deadbeef"); ok {
		t.Error("nil-client cache returned a hit")
	}
	// 写入和清除在无 Redis 时必须是空操作，不能崩
	cache.Set(ctx, "deadbeef", []quizbank.Question{{Prompt: "q"}})
	cache.Invalidate(ctx, "deadbeef")
}
