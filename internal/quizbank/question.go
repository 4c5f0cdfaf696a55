package quizbank

// QuestionType 题目类型
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	OpenText       QuestionType = "open_text"
)

// Question 解析后的题目，构造完成后不再修改
type Question struct {
	Prompt    string       `json:"prompt"`
	Type      QuestionType `json:"type"`
	Options   []string     `json:"options,omitempty"`   // 仅选择题，保持原始顺序
	Correct   []string     `json:"correct,omitempty"`   // 选择题的正确选项标签
	Reference string       `json:"reference,omitempty"` // 简答题的参考答案
	Weight    float64      `json:"weight"`
}

// IsChoice 是否为选择题
func (q Question) IsChoice() bool {
	return q.Type == MultipleChoice
}
