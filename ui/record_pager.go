package ui

import (
	"fmt"

	"dbfconv/dbf"
	"dbfconv/dbf/dfield"
	"dbfconv/dbf/drecord"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

const pageSize = 10

type RecordPager struct {
	displayName string
	fields      []dfield.Descriptor
	records     []*drecord.Record
	page        int
}

func CreateRecordPager(path string) (RecordPager, error) {
	reader, err := dbf.Open(path, dbf.DefaultOptions())
	if err != nil {
		err := errors.Wrap(err, "CreateRecordPager error")
		return RecordPager{}, err
	}
	defer reader.Close()

	records, err := reader.ReadAll()
	if err != nil {
		err := errors.Wrap(err, "CreateRecordPager error")
		return RecordPager{}, err
	}
	return RecordPager{
		displayName: reader.DisplayName(),
		fields:      reader.Fields(),
		records:     records,
		page:        0,
	}, nil
}

func (s RecordPager) lastPage() int {
	if len(s.records) == 0 {
		return 0
	}
	return (len(s.records) - 1) / pageSize
}

func (s RecordPager) View() string {
	output := "DBFCONV\n\n"
	output += fmt.Sprintf("Table: %s (%d records)\n\n", s.displayName, len(s.records))

	start := s.page * pageSize
	end := start + pageSize
	if end > len(s.records) {
		end = len(s.records)
	}
	for _, record := range s.records[start:end] {
		marker := " "
		if record.Deleted {
			marker = "*"
		}
		output += fmt.Sprintf("%s#%d", marker, record.Number)
		for _, field := range s.fields {
			value, _ := record.Value(field.Name)
			output += fmt.Sprintf("  %s=%s", field.Name, dbf.FormatValue(value))
		}
		output += "\n"
	}

	output += fmt.Sprintf("\nPage %d/%d", s.page+1, s.lastPage()+1)
	output += "  (n: next page, p: previous page, q: quit)\n"
	return output
}

func (s RecordPager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		return s, tea.Quit
	case "n", "right", "l":
		if s.page < s.lastPage() {
			s.page++
		}
	case "p", "left", "h":
		if s.page > 0 {
			s.page--
		}
	}
	return s, nil
}

func (s RecordPager) Init() tea.Cmd {
	return nil
}
