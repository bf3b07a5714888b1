package formatter

import (
	"io"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonReport is the top-level JSON document.
type jsonReport struct {
	Blocks []BlockRow `json:"blocks"`
	Totals BlockRow   `json:"totals"`
}

func (f *JSONFormatter) Format(w io.Writer, rows []BlockRow) error {
	if rows == nil {
		rows = []BlockRow{}
	}
	total := totals(rows)
	total.Kind = "total"

	data, err := sonic.ConfigStd.MarshalIndent(jsonReport{Blocks: rows, Totals: total}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
