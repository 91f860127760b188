package pixpaint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTool_Parse(t *testing.T) {
	tests := []struct {
		name string
		want Tool
	}{
		{"line", Line{Width: 3}},
		{"rectangle", Rectangle{Width: 3}},
		{"circle", Circle{Width: 3}},
		{"triangle", Triangle{Width: 3}},
		{"paint-bucket", PaintBucket{}},
		{"bucket", PaintBucket{}},
		{"Fill", PaintBucket{}},
		{"pencil", Pencil{Width: 3}},
		{"brush", Brush{Size: 4}},
		{" eraser ", Eraser{Size: 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			got, err := ParseTool(tc.name, DefaultLineWidth, DefaultBrushSize)
			assert.NoError(err)
			assert.Equal(tc.want, got)
		})
	}
}

func TestTool_ParseUnknown(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseTool("spray", 1, 1)
	assert.True(errors.Is(err, ErrUnknownTool))
	assert.Contains(err.Error(), "spray")
}

func TestTool_NamesRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, name := range ToolNames() {
		tool, err := ParseTool(name, 1, 1)
		assert.NoError(err)
		assert.Equal(name, tool.Name())
	}
	assert.Len(ToolNames(), 8)
}

func TestTool_WithSizes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Line{Width: 7}, withLineWidth(Line{Width: 1}, 7))
	assert.Equal(Pencil{Width: 2}, withLineWidth(Pencil{Width: 1}, 2))
	assert.Equal(Brush{Size: 1}, withLineWidth(Brush{Size: 1}, 7))
	assert.Equal(Eraser{Size: 9}, withBrushSize(Eraser{Size: 1}, 9.5))
	assert.Equal(Circle{Width: 1}, withBrushSize(Circle{Width: 1}, 9))
}
