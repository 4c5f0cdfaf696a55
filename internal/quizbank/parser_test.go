package quizbank

import (
	"errors"
	"reflect"
	"testing"
)

func bank(rows ...[]string) Table {
	return Table{
		Columns: []string{ColPrompt, ColType, ColOptions, ColCorrect, ColWeight},
		Rows:    rows,
	}
}

func TestParseIndexAnswers(t *testing.T) {
	qs, warns, err := Parse(bank(
		[]string{"Pick colors", "mc", "Red;Green;Blue", "1;3", "2"},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}

	q := qs[0]
	if q.Type != MultipleChoice {
		t.Errorf("type = %q, want %q", q.Type, MultipleChoice)
	}
	if want := []string{"Red", "Green", "Blue"}; !reflect.DeepEqual(q.Options, want) {
		t.Errorf("options = %v, want %v", q.Options, want)
	}
	// 序号按 1 起算映射到选项标签
	if want := []string{"Red", "Blue"}; !reflect.DeepEqual(q.Correct, want) {
		t.Errorf("correct = %v, want %v", q.Correct, want)
	}
	if q.Weight != 2 {
		t.Errorf("weight = %v, want 2", q.Weight)
	}
}

func TestParseIndexOutOfRange(t *testing.T) {
	qs, warns, err := Parse(bank(
		[]string{"Pick", "mc", "A;B", "1;5", ""},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// 越界序号被静默丢弃，只留下告警
	if want := []string{"A"}; !reflect.DeepEqual(qs[0].Correct, want) {
		t.Errorf("correct = %v, want %v", qs[0].Correct, want)
	}
	if len(warns) != 1 || warns[0].Row != 1 {
		t.Errorf("warnings = %v, want one warning for row 1", warns)
	}
}

func TestParseLiteralAnswers(t *testing.T) {
	qs, warns, err := Parse(bank(
		[]string{"Pick", "mc", "Red;Green;Blue", "Red;Blue", ""},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if want := []string{"Red", "Blue"}; !reflect.DeepEqual(qs[0].Correct, want) {
		t.Errorf("correct = %v, want %v", qs[0].Correct, want)
	}
}

func TestParseLiteralAnswerNotAnOption(t *testing.T) {
	qs, warns, err := Parse(bank(
		[]string{"Pick", "mc", "Red;Green", "Purple", ""},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// 字面答案不强制命中选项，但要有告警
	if want := []string{"Purple"}; !reflect.DeepEqual(qs[0].Correct, want) {
		t.Errorf("correct = %v, want %v", qs[0].Correct, want)
	}
	if len(warns) != 1 {
		t.Errorf("warnings = %v, want exactly one", warns)
	}
}

func TestParseInnerSpaceDefeatsIndexDetection(t *testing.T) {
	// "1; 3" 含空格，整体不是纯数字，按字面标签处理
	qs, _, err := Parse(bank(
		[]string{"Pick", "mc", "Red;Green;Blue", "1; 3", ""},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := []string{"1", "3"}; !reflect.DeepEqual(qs[0].Correct, want) {
		t.Errorf("correct = %v, want literal %v", qs[0].Correct, want)
	}
}

func TestParseOpenText(t *testing.T) {
	tests := []struct {
		name  string
		qtype string
	}{
		{"explicit open", "open"},
		{"empty type", ""},
		{"unknown type", "essay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, _, err := Parse(bank(
				[]string{"Capital of France?", tt.qtype, "", "Paris", ""},
			))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			q := qs[0]
			if q.Type != OpenText {
				t.Errorf("type = %q, want %q", q.Type, OpenText)
			}
			if q.Reference != "Paris" {
				t.Errorf("reference = %q, want %q", q.Reference, "Paris")
			}
			if q.Options != nil {
				t.Errorf("options = %v, want nil", q.Options)
			}
		})
	}
}

func TestParseWeightDefaults(t *testing.T) {
	tests := []struct {
		name   string
		weight string
		want   float64
	}{
		{"missing", "", 1.0},
		{"garbage", "abc", 1.0},
		{"zero", "0", 1.0},
		{"negative", "-2", 1.0},
		{"fractional", "0.5", 0.5},
		{"padded", " 3 ", 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, _, err := Parse(bank(
				[]string{"Q", "open", "", "A", tt.weight},
			))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if qs[0].Weight != tt.want {
				t.Errorf("weight = %v, want %v", qs[0].Weight, tt.want)
			}
		})
	}
}

func TestParseMissingColumns(t *testing.T) {
	_, _, err := Parse(Table{
		Columns: []string{ColPrompt, ColType},
		Rows:    [][]string{{"Q", "open"}},
	})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
	if want := []string{ColOptions, ColCorrect}; !reflect.DeepEqual(schemaErr.Missing, want) {
		t.Errorf("missing = %v, want %v", schemaErr.Missing, want)
	}
}

func TestParseEmptyOptionsChoice(t *testing.T) {
	// 选项为空的选择题允许通过，评分阶段自然得 0 分
	qs, _, err := Parse(bank(
		[]string{"Impossible", "mc", "", "1", ""},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(qs[0].Options) != 0 {
		t.Errorf("options = %v, want empty", qs[0].Options)
	}
	if len(qs[0].Correct) != 0 {
		t.Errorf("correct = %v, want empty", qs[0].Correct)
	}
}

func TestParseKeepsRowOrder(t *testing.T) {
	qs, _, err := Parse(bank(
		[]string{"First", "open", "", "a", ""},
		[]string{"Second", "mc", "X;Y", "1", ""},
		[]string{"Third", "open", "", "b", ""},
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := []string{qs[0].Prompt, qs[1].Prompt, qs[2].Prompt}
	if want := []string{"First", "Second", "Third"}; !reflect.DeepEqual(got, want) {
		t.Errorf("prompts = %v, want %v", got, want)
	}
}

func TestParseIdempotent(t *testing.T) {
	table := bank(
		[]string{"Pick", "mc", "Red; Green ;Blue", "1;2", "2"},
		[]string{"Say", "open", "", "hello", ""},
	)

	first, _, err := Parse(table)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, _, err := Parse(table)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parse differs:\n%v\n%v", first, second)
	}
}
