package quizbank

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadTableCommaCSV(t *testing.T) {
	csvData := "prompt,type,options,correct_answers,weight\n" +
		"Pick,mc,Red;Blue,1,2\n"

	table, err := ReadTable(strings.NewReader(csvData), "questions.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if want := []string{"prompt", "type", "options", "correct_answers", "weight"}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("columns = %v, want %v", table.Columns, want)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "Pick" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestReadTableSemicolonFallback(t *testing.T) {
	// 德语 Excel 导出的 CSV 常用分号分隔，整行只解析出一列时重试
	csvData := "Frage;Typ;Antwortmöglichkeiten;Richtige Antworten;Gewicht\n" +
		"Hauptstadt?;open;;Berlin;1\n"

	table, err := ReadTable(strings.NewReader(csvData), "fragen.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if want := []string{ColPrompt, ColType, ColOptions, ColCorrect, ColWeight}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("columns = %v, want %v", table.Columns, want)
	}
	if table.Rows[0][3] != "Berlin" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestReadTableGermanHeaderAliases(t *testing.T) {
	csvData := "Frage,Typ,Antwortmöglichkeiten,Richtige Antworten,Gewicht\n"

	table, err := ReadTable(strings.NewReader(csvData), "fragen.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if want := []string{ColPrompt, ColType, ColOptions, ColCorrect, ColWeight}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("columns = %v, want %v", table.Columns, want)
	}
}

func TestReadTableStripsBOM(t *testing.T) {
	csvData := "\uFEFFprompt,type,options,correct_answers\nQ,open,,A\n"

	table, err := ReadTable(strings.NewReader(csvData), "q.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if table.Columns[0] != ColPrompt {
		t.Errorf("first column = %q, want %q", table.Columns[0], ColPrompt)
	}
}

func TestReadTableHeaderCaseInsensitive(t *testing.T) {
	csvData := "Prompt, TYPE ,Options,Correct Answers\nQ,open,,A\n"

	table, err := ReadTable(strings.NewReader(csvData), "q.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if want := []string{ColPrompt, ColType, ColOptions, ColCorrect}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("columns = %v, want %v", table.Columns, want)
	}
}

func TestReadTableEmptyFile(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), "empty.csv")
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("err = %v, want ErrEmptyTable", err)
	}
}

func TestReadTableHeaderOnly(t *testing.T) {
	table, err := ReadTable(strings.NewReader("prompt,type,options,correct_answers\n"), "q.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("rows = %v, want none", table.Rows)
	}
}

func TestReadTableRaggedRows(t *testing.T) {
	// 行尾缺列不报错，按空单元格处理
	csvData := "prompt,type,options,correct_answers,weight\nShort,open,,A\n"

	table, err := ReadTable(strings.NewReader(csvData), "q.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows[0]) != 4 {
		t.Errorf("row length = %d, want 4", len(table.Rows[0]))
	}

	qs, _, err := Parse(table)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if qs[0].Weight != 1.0 {
		t.Errorf("weight = %v, want default 1.0", qs[0].Weight)
	}
}
