package main

import (
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// cellToDevice maps a terminal cell to the device pixel at its centre.
func cellToDevice(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * cellWidth, (float64(row) + 0.5) * cellHeight
}

// deviceToCell is the inverse of cellToDevice, flooring to the cell.
func deviceToCell(x, y float64) (int, int) {
	return floorDiv(x, cellWidth), floorDiv(y, cellHeight)
}

func floorDiv(v, size float64) int {
	q := int(v / size)
	if v < 0 && float64(q)*size != v {
		q--
	}
	return q
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText drops what terminals and clipboard managers add around
// a copied diagram.
func cleanClipboardText(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.TrimSpace(text)
}

func (m *model) copyToClipboard() {
	if err := clipboard.WriteAll(m.doc.Serial()); err != nil {
		m.doc.Logger().Warn().Err(err).Msg("clipboard write failed")
		m.messages.Notify("Could not copy", "The clipboard is not available.")
		return
	}
	m.messages.success("Copied diagram to clipboard")
}

func (m *model) pasteFromClipboard() {
	text, err := readClipboardText()
	if err != nil {
		m.doc.Logger().Warn().Err(err).Msg("clipboard read failed")
		m.messages.Notify("Could not paste", "The clipboard is not available.")
		return
	}
	if err := m.doc.LoadSerial(cleanClipboardText(text)); err != nil {
		return
	}
	m.messages.success("Loaded diagram from clipboard")
}

// scanDiagramFiles lists the saved diagrams in the save directory.
func (m *model) scanDiagramFiles() {
	m.fileList = []string{}

	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			m.selectedFileIndex = -1
			return
		}
		dir = wd
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), saveExtension) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = strings.TrimSuffix(m.fileList[0], saveExtension)
	} else {
		m.selectedFileIndex = -1
	}
}
