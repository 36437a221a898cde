package display

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	// GIVEN
	label := NewLabel()

	// WHEN
	label.SetText("C: 45 °C")

	// THEN
	assert.Equal(t, "C: 45 °C", label.Text())

	Release(label)
	assert.Equal(t, "", label.Text())
}

func TestPanel_RendersSlotsInOrder(t *testing.T) {
	// GIVEN
	var lines []string
	panel := NewPanel(func(line string) {
		lines = append(lines, line)
	})
	gpu := panel.Slot("gpu")
	cpu := panel.Slot("cpu")

	// WHEN
	cpu.SetText("C: 45 °C")
	gpu.SetText("G: 62 °C")

	// THEN
	assert.Equal(t, []string{"C: 45 °C", "G: 62 °C  C: 45 °C"}, lines)
	assert.Equal(t, "G: 62 °C  C: 45 °C", panel.Line())
}

func TestPanel_SkipsUnchangedText(t *testing.T) {
	// GIVEN
	renderCount := 0
	panel := NewPanel(func(line string) {
		renderCount++
	})
	cpu := panel.Slot("cpu")

	// WHEN
	cpu.SetText("C: 45 °C")
	cpu.SetText("C: 45 °C")
	cpu.SetText("C: 46 °C")

	// THEN
	assert.Equal(t, 2, renderCount)
}

func TestPanel_SameSlotTwice(t *testing.T) {
	// GIVEN
	panel := NewPanel(func(line string) {})

	// WHEN
	panel.Slot("cpu").SetText("C: 45 °C")
	panel.Slot("cpu").SetText("C: 47 °C")

	// THEN
	assert.Equal(t, "C: 47 °C", panel.Line())
}

func TestFileSink(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "cpu")
	sink := NewFileSink(path)

	// WHEN
	sink.SetText("C: 45 °C")

	// THEN
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "C: 45 °C\n", string(data))

	Release(sink)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// releasing twice is fine
	Release(sink)
}

func TestMulti(t *testing.T) {
	// GIVEN
	first := NewLabel()
	second := NewLabel()
	sink := Multi(first, nil, second)

	// WHEN
	sink.SetText("G: 62 °C")

	// THEN
	assert.Equal(t, "G: 62 °C", first.Text())
	assert.Equal(t, "G: 62 °C", second.Text())

	Release(sink)
	assert.Equal(t, "", first.Text())
	assert.Equal(t, "", second.Text())
}
