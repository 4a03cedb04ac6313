package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func Start(path string) error {
	recordPager, err := CreateRecordPager(path)
	if err != nil {
		return err
	}
	return tea.NewProgram(&recordPager).Start()
}
