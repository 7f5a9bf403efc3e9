package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyCanvasSerial = "{0,5000.000000,3000.000000,1.000000,0.000000,0.000000,0,}"

func TestSerialiseFormat(t *testing.T) {
	c := NewCanvas()
	assert.Equal(t, emptyCanvasSerial, c.Serialise())

	point := c.NewPoint(Coordinate{X: 1.5, Y: 2})
	require.NoError(t, c.AddObject(point))

	child := "{2,1.500000,2.000000,1,0,}"
	want := fmt.Sprintf("{0,5000.000000,3000.000000,1.000000,0.000000,0.000000,1,%d:%s}", len(child), child)
	assert.Equal(t, want, c.Serialise())
}

func TestSerialisePayloads(t *testing.T) {
	c := NewCanvas()
	label := c.NewLabel(Coordinate{}, "a,b")
	line := c.NewSupplyDemandLine(Coordinate{}, -0.25)

	assert.Equal(t, "{1,0.000000,0.000000,1,3:a,b,0,}", c.serialiseObject(c.Object(label)))
	assert.Equal(t, "{3,0.000000,0.000000,0,-0.250000,0,}", c.serialiseObject(c.Object(line)))
}

func buildSampleCanvas(t *testing.T) *Canvas {
	t.Helper()
	c := NewCanvas()
	c.SetShowingParentGuides(true)
	c.SetZoom(1.25)
	c.SetPan(40, 80)

	axis := c.NewAxis(Coordinate{X: 150, Y: 90})
	second := c.NewAxis(Coordinate{X: 700, Y: 90})
	label := c.NewLabel(Coordinate{X: 12, Y: 30}, "Price {P}\nq: 1,2 `3000`")
	point := c.NewPoint(Coordinate{X: 100, Y: 200})
	pointLabel := c.NewLabel(Coordinate{X: 5, Y: -15}, "E")
	supply := c.NewSupplyDemandLine(Coordinate{X: 0, Y: 300}, 1)
	demand := c.NewSupplyDemandLine(Coordinate{X: 252, Y: 252}, -1.5)
	free := c.NewLabel(Coordinate{X: 900, Y: 500}, "")

	require.NoError(t, c.AddObject(axis))
	require.NoError(t, c.AddObject(second))
	require.NoError(t, c.AddObject(free))
	require.NoError(t, c.AddChild(axis, label))
	require.NoError(t, c.AddChild(axis, point))
	require.NoError(t, c.AddChild(point, pointLabel))
	require.NoError(t, c.AddChild(axis, supply))
	require.NoError(t, c.AddChild(second, demand))
	return c
}

func TestDeserialiseRoundTrip(t *testing.T) {
	c := buildSampleCanvas(t)
	serial := c.Serialise()

	loaded, err := Deserialise(serial)
	require.NoError(t, err)
	assert.Equal(t, serial, loaded.Serialise())

	assert.True(t, loaded.ShowingParentGuides())
	assert.Equal(t, ZoomPanSettings{Zoom: 1.25, X: 40, Y: 80}, loaded.ZoomPan())
	require.Len(t, loaded.Children(), 3)

	axis := loaded.Object(loaded.Children()[0])
	assert.Equal(t, KindAxis, axis.Kind)
	require.Len(t, axis.Children, 3)
	label := loaded.Object(axis.Children[0])
	assert.Equal(t, "Price {P}\nq: 1,2 `3000`", label.Text)

	second := loaded.Object(loaded.Children()[1])
	demand := loaded.Object(second.Children[0])
	assert.Equal(t, -1.5, demand.Gradient)
	assert.False(t, demand.CanDrag)

	// Compressed and back again.
	raw, err := Decompress(Compress(serial))
	require.NoError(t, err)
	assert.Equal(t, serial, raw)
}

func TestDeserialiseMalformed(t *testing.T) {
	okChild := "{2,1.000000,2.000000,1,0,}"
	header := "{0,5000.000000,3000.000000,1.000000,0.000000,0.000000,"

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not a diagram", "hello"},
		{"bad flag", "{2,5000.000000,3000.000000,1.000000,0.000000,0.000000,0,}"},
		{"bad number", "{0,wide,3000.000000,1.000000,0.000000,0.000000,0,}"},
		{"nan", "{0,NaN,3000.000000,1.000000,0.000000,0.000000,0,}"},
		{"negative count", header + "-1,}"},
		{"missing child", header + "1,}"},
		{"length overruns", header + "1,99:" + okChild + "}"},
		{"short length", header + fmt.Sprintf("1,%d:%s}", len(okChild)-1, okChild)},
		{"unknown kind", header + "1,25:{7,1.000000,2.000000,1,0,}}"},
		{"missing close", header + "0,"},
		{"trailing data", emptyCanvasSerial + "x"},
		{"label length overruns", header + "1,30:{1,0.000000,0.000000,1,9:ab,0,}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Deserialise(tt.in)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrMalformed)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.GreaterOrEqual(t, perr.Offset, 0)
			assert.LessOrEqual(t, perr.Offset, len(tt.in))
		})
	}
}

func TestDeserialiseClampsZoom(t *testing.T) {
	c, err := Deserialise("{0,5000.000000,3000.000000,80.000000,0.000000,0.000000,0,}")
	require.NoError(t, err)
	assert.Equal(t, maxZoom, c.Zoom())
}

func TestParseErrorOffsetPointsAtChild(t *testing.T) {
	header := "{0,5000.000000,3000.000000,1.000000,0.000000,0.000000,"
	child := "{7,1.000000,2.000000,1,0,}"
	in := header + fmt.Sprintf("1,%d:%s}", len(child), child)

	_, err := Deserialise(in)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, len(header)+len("1,26:{"), perr.Offset)
	assert.Contains(t, perr.Error(), "unknown object kind 7")
}
