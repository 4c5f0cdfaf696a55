package service

import (
	"reflect"
	"testing"
	"time"
)

func TestResultCSVRecords(t *testing.T) {
	ts := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)

	rows := []ResultRow{
		{
			Name:        "Alice",
			SubmittedAt: ts,
			TotalScore:  2.5,
			Answers: []AnswerCell{
				{Prompt: "q1", Answer: "A|B", Score: 2},
				{Prompt: "q2", Answer: "Paris", Score: 0.5},
			},
		},
		{
			Name:        "Bob",
			SubmittedAt: ts.Add(time.Minute),
			TotalScore:  1.0 / 3.0,
			Answers: []AnswerCell{
				{Prompt: "q1", Answer: "A", Score: 1.0 / 3.0},
				{Prompt: "q2", Answer: "", Score: 0},
			},
		},
	}

	records := ResultCSVRecords(2, rows)

	wantHeader := []string{"Name", "Time", "Total", "Q1 Answer", "Q1 Score", "Q2 Answer", "Q2 Score"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v, want %v", records[0], wantHeader)
	}

	wantAlice := []string{"Alice", "2026-08-20T14:30:00Z", "2.5", "A|B", "2", "Paris", "0.5"}
	if !reflect.DeepEqual(records[1], wantAlice) {
		t.Errorf("row = %v, want %v", records[1], wantAlice)
	}

	// 逐题得分保留两位小数，总分写原始值
	wantBob := []string{"Bob", "2026-08-20T14:31:00Z", "0.3333333333333333", "A", "0.33", "", "0"}
	if !reflect.DeepEqual(records[2], wantBob) {
		t.Errorf("row = %v, want %v", records[2], wantBob)
	}
}

func TestResultCSVRecordsTotalNotRounded(t *testing.T) {
	rows := []ResultRow{
		{
			Name:        "Dana",
			SubmittedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			TotalScore:  2.0 / 3.0,
			Answers:     []AnswerCell{{Prompt: "q1", Answer: "B", Score: 2.0 / 3.0}},
		},
	}

	records := ResultCSVRecords(1, rows)

	if got := records[1][2]; got != "0.6666666666666666" {
		t.Errorf("total = %q, want raw sum", got)
	}
	if got := records[1][4]; got != "0.67" {
		t.Errorf("question score = %q, want two decimals", got)
	}
}

func TestResultCSVRecordsPadsMissingAnswers(t *testing.T) {
	rows := []ResultRow{
		{
			Name:        "Carol",
			SubmittedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			TotalScore:  1,
			Answers:     []AnswerCell{{Prompt: "q1", Answer: "x", Score: 1}},
		},
	}

	records := ResultCSVRecords(3, rows)

	// 答卷比题目少时补空单元格，保持列数一致
	if len(records[1]) != len(records[0]) {
		t.Fatalf("row has %d cells, header has %d", len(records[1]), len(records[0]))
	}
	if records[1][5] != "" || records[1][6] != "0" {
		t.Errorf("padding cells = %q, %q; want empty answer and zero score", records[1][5], records[1][6])
	}
}
