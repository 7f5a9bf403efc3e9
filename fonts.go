package main

import (
	"math"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error

	labelFace font.Face
)

func loadMonoFont() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
		if monoErr == nil {
			labelFace = newMonoFace(monoFont, labelFontSize)
		}
	})
	return monoFont, monoErr
}

func newMonoFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// measureLabel returns the world-space box a label's text occupies.
func measureLabel(text string) (float64, float64) {
	lines := strings.Split(text, "\n")

	if _, err := loadMonoFont(); err != nil {
		// Go Mono advances are 0.6em.
		widest := 0
		for _, line := range lines {
			widest = max(widest, len([]rune(line)))
		}
		return math.Max(float64(widest)*labelFontSize*0.6, 1), labelFontSize * float64(len(lines))
	}

	width := 0.0
	for _, line := range lines {
		w := float64(font.MeasureString(labelFace, line)) / 64
		width = math.Max(width, w)
	}
	lineHeight := float64(labelFace.Metrics().Height) / 64
	return math.Max(width, 1), lineHeight * float64(len(lines))
}

// labelAscent is the distance from the top of a label box to its baseline.
func labelAscent() float64 {
	if _, err := loadMonoFont(); err != nil {
		return labelFontSize * 0.8
	}
	return float64(labelFace.Metrics().Ascent) / 64
}
