package quizbank

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table 归一化后的题库表格：表头已转为逻辑列名，行保持上传顺序
type Table struct {
	Columns []string
	Rows    [][]string
}

// 表头别名 -> 逻辑列名。兼容旧版德语表格的列名，
// 迁移期间已有的题库文件可以直接上传。
var columnAliases = map[string]string{
	"prompt":               ColPrompt,
	"question":             ColPrompt,
	"frage":                ColPrompt,
	"type":                 ColType,
	"typ":                  ColType,
	"options":              ColOptions,
	"antwortmöglichkeiten": ColOptions,
	"correct_answers":      ColCorrect,
	"correctanswers":       ColCorrect,
	"correct answers":      ColCorrect,
	"richtige antworten":   ColCorrect,
	"weight":               ColWeight,
	"gewicht":              ColWeight,
}

var ErrEmptyTable = errors.New("question file contains no rows")

// ReadTable 按文件扩展名读取上传的题库文件。
// CSV 先按逗号解析，只解析出一列时再按分号重试；Excel 取第一个工作表。
func ReadTable(r io.Reader, filename string) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls", ".xlsx":
		return readExcel(data)
	default:
		return readCSV(data)
	}
}

func readCSV(data []byte) (Table, error) {
	t, err := readCSVDelim(data, ',')
	if err == nil && len(t.Columns) == 1 {
		if alt, altErr := readCSVDelim(data, ';'); altErr == nil && len(alt.Columns) > 1 {
			return alt, nil
		}
	}
	return t, err
}

func readCSVDelim(data []byte, delim rune) (Table, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, ErrEmptyTable
		}
		return Table{}, err
	}

	t := Table{Columns: canonicalColumns(header)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, err
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func readExcel(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, err
	}
	if len(rows) == 0 {
		return Table{}, ErrEmptyTable
	}

	return Table{
		Columns: canonicalColumns(rows[0]),
		Rows:    rows[1:],
	}, nil
}

func canonicalColumns(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		if canonical, ok := columnAliases[h]; ok {
			h = canonical
		}
		out[i] = h
	}
	return out
}
