package quizbank

import (
	"fmt"
	"strconv"
	"strings"
)

// 题库表格的逻辑列名（表头经 ReadTable 归一化后使用）
const (
	ColPrompt  = "prompt"
	ColType    = "type"
	ColOptions = "options"
	ColCorrect = "correct_answers"
	ColWeight  = "weight"
)

var requiredColumns = []string{ColPrompt, ColType, ColOptions, ColCorrect}

// SchemaError 缺少必需列时返回，创建测验时直接反馈给管理员
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// Warning 解析过程中被静默处理的作者错误（越界序号、未命中选项的字面答案）。
// 解析本身永远不会因此失败，由调用方决定是否记录。
type Warning struct {
	Row     int // 1-based 数据行号
	Message string
}

// Parse 将表格按输入顺序转换为题目序列。
// Weight 缺失或无法解析时取 1.0，不报错。
func Parse(t Table) ([]Question, []Warning, error) {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		idx[c] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{Missing: missing}
	}

	questions := make([]Question, 0, len(t.Rows))
	var warnings []Warning

	for n, row := range t.Rows {
		cell := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		q := Question{
			Prompt: strings.TrimSpace(cell(ColPrompt)),
			Weight: parseWeight(cell(ColWeight)),
		}

		corr := strings.TrimSpace(cell(ColCorrect))

		if strings.ToLower(strings.TrimSpace(cell(ColType))) == "mc" {
			q.Type = MultipleChoice
			q.Options = splitList(cell(ColOptions))
			q.Correct, warnings = resolveCorrect(corr, q.Options, n+1, warnings)
		} else {
			q.Type = OpenText
			q.Reference = corr
		}

		questions = append(questions, q)
	}

	return questions, warnings, nil
}

// resolveCorrect 解析正确答案字段：纯数字视为 1-based 选项序号，
// 否则视为字面标签。越界序号丢弃，字面标签不强制要求命中选项。
func resolveCorrect(corr string, options []string, row int, warnings []Warning) ([]string, []Warning) {
	if isIndexList(corr) {
		var labels []string
		for _, part := range strings.Split(corr, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			i, err := strconv.Atoi(part)
			if err != nil {
				continue
			}
			if i < 1 || i > len(options) {
				warnings = append(warnings, Warning{
					Row:     row,
					Message: fmt.Sprintf("correct-answer index %d out of range (1..%d), dropped", i, len(options)),
				})
				continue
			}
			labels = append(labels, options[i-1])
		}
		return labels, warnings
	}

	labels := splitList(corr)
	for _, l := range labels {
		if !containsFold(options, l) {
			warnings = append(warnings, Warning{
				Row:     row,
				Message: fmt.Sprintf("correct answer %q does not match any option", l),
			})
		}
	}
	return labels, warnings
}

// isIndexList 去掉分号后整个字段仅剩数字时按序号列表处理
func isIndexList(s string) bool {
	s = strings.ReplaceAll(s, ";", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseWeight(s string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || w <= 0 {
		return 1.0
	}
	return w
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
