package certificate

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() Data {
	return Data{
		RunID:    "3f1c9a2e-run",
		Name:     "Ada",
		Title:    "RESET",
		Score:    730,
		MaxScore: 1000,
		Answered: 100,
		Total:    100,
		Date:     time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		Breakdown: []Category{
			{Name: "Neocortex", Key: "C", Count: 60, Points: 600},
			{Name: "Reptilian", Key: "A", Count: 14, Points: 0},
			{Name: "Limbic", Key: "B", Count: 26, Points: 130},
		},
	}
}

func TestBytesProducesPDF(t *testing.T) {
	out, err := Bytes(sampleData())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing PDF header")
	assert.True(t, bytes.Contains(out, []byte("%%EOF")), "missing PDF trailer")
}

func TestWriteRequiresName(t *testing.T) {
	data := sampleData()
	data.Name = ""
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, data), ErrNoName)
	assert.Zero(t, buf.Len())
}

func TestBreakdownIsNotMutated(t *testing.T) {
	data := sampleData()
	_, err := Bytes(data)
	require.NoError(t, err)
	assert.Equal(t, "C", data.Breakdown[0].Key)
}

func TestFinished(t *testing.T) {
	d := sampleData()
	assert.True(t, d.Finished())

	d.Answered = 40
	assert.False(t, d.Finished())

	assert.False(t, Data{}.Finished())
}
