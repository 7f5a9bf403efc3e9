package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderImageCropsToContent(t *testing.T) {
	td := newTestDocument(t)

	// The default axis spans x 146..551 and y 90..396 once ticks are included.
	img, err := td.Canvas().RenderImage(ExportNormal.Scale())
	require.NoError(t, err)
	assert.Equal(t, 445, img.Bounds().Dx())
	assert.Equal(t, 346, img.Bounds().Dy())

	img, err = td.Canvas().RenderImage(ExportHigh.Scale())
	require.NoError(t, err)
	assert.Equal(t, 850, img.Bounds().Dx())
	assert.Equal(t, 652, img.Bounds().Dy())

	// The margin stays white and the y-axis is drawn in black.
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(20+8+1, 200).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
}

func TestRenderImageEmpty(t *testing.T) {
	c := NewCanvas()
	_, err := c.RenderImage(1)
	assert.ErrorIs(t, err, ErrEmptyDiagram)
}

func TestExportPNG(t *testing.T) {
	dir := t.TempDir()
	td := newTestDocument(t)
	_, err := td.Perform(InsertSupplyLine)
	require.NoError(t, err)
	_, err = td.Perform(InsertBoundLabelAtRandomPosition)
	require.NoError(t, err)

	path, err := td.ExportPNG(filepath.Join(dir, "chart"), ExportNormal)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chart.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 400)

	// Exporting does not count as saving.
	assert.True(t, td.UnsavedChanges())
}

func TestExportPNGEmptyDiagram(t *testing.T) {
	td := newTestDocument(t)
	require.NoError(t, td.LoadSerial(Compress(emptyCanvasSerial)))

	path, err := td.ExportPNG(filepath.Join(t.TempDir(), "blank.PNG"), ExportHigh)
	assert.ErrorIs(t, err, ErrEmptyDiagram)
	assert.Equal(t, "blank.PNG", filepath.Base(path))
	assert.Equal(t, []string{"Error"}, td.notifier.titles)
}
