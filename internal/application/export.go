package application

import (
	"bytes"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/xuri/excelize/v2"
)

const submissionsSheet = "Submissions"

// SubmissionRows lays out submissions as a table: a header row followed by
// one row per submission, with one column per element in form order.
func SubmissionRows(f form.Form, subs []form.Submission) [][]interface{} {
	header := make([]interface{}, 0, len(f.Elements)+2)
	header = append(header, "Submitted At", "Respondent Email")
	for _, el := range f.Elements {
		header = append(header, el.Label)
	}

	rows := make([][]interface{}, 0, len(subs)+1)
	rows = append(rows, header)
	for _, sub := range subs {
		values := sub.Data.Data()
		row := make([]interface{}, 0, len(header))
		row = append(row, sub.SubmittedAt.UTC().Format(time.RFC3339), sub.RespondentEmail)
		for _, el := range f.Elements {
			if v, ok := values[el.ID]; ok {
				row = append(row, v.Text())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildWorkbook renders submissions as an XLSX document.
func BuildWorkbook(f form.Form, subs []form.Submission) ([]byte, error) {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", submissionsSheet); err != nil {
		return nil, err
	}

	rows := SubmissionRows(f, subs)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := book.SetSheetRow(submissionsSheet, cell, &rows[i]); err != nil {
			return nil, err
		}
	}

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return nil, err
	}
	if err := book.SetCellStyle(submissionsSheet, "A1", last, bold); err != nil {
		return nil, err
	}
	if err := book.SetPanes(submissionsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
