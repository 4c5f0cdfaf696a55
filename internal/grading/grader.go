package grading

import (
	"strings"

	"quizlink_backend/internal/quizbank"
)

// Grade 计算单题的正确率，返回值在 [0,1]。
// 纯函数，答案缺失或格式错误一律计 0 分，不会报错。
func Grade(q quizbank.Question, raw string) float64 {
	if q.IsChoice() {
		return gradeChoice(q.Correct, raw)
	}
	return gradeOpen(q.Reference, raw)
}

// gradeChoice 选择题评分：
// 选项用 "|" 连接提交；选错任何一项整题 0 分，否则按选中的正确选项比例给分。
func gradeChoice(correct []string, raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}

	selected := map[string]struct{}{}
	for _, part := range strings.Split(raw, "|") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			selected[p] = struct{}{}
		}
	}

	want := make(map[string]struct{}, len(correct))
	for _, c := range correct {
		want[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	if len(want) == 0 || len(selected) == 0 {
		return 0
	}
	for s := range selected {
		if _, ok := want[s]; !ok {
			return 0
		}
	}
	return float64(len(selected)) / float64(len(want))
}

// gradeOpen 简答题评分：忽略首尾空白和大小写的精确匹配，非对即错
func gradeOpen(reference, raw string) float64 {
	if strings.EqualFold(strings.TrimSpace(raw), strings.TrimSpace(reference)) {
		return 1.0
	}
	return 0
}

// Score 对一份提交按题目权重计分。
// 返回 prompt -> 加权得分 的映射以及总分（各题加权得分之和，不归一化）。
func Score(questions []quizbank.Question, answers map[string]string) (map[string]float64, float64) {
	scores := make(map[string]float64, len(questions))
	total := 0.0
	for _, q := range questions {
		s := q.Weight * Grade(q, answers[q.Prompt])
		scores[q.Prompt] = s
		total += s
	}
	return scores, total
}
