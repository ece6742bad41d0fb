package bloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateM(t *testing.T) {
	// ceil(-(n*ln f)/(ln 2)^2), checked against hand-computed values.
	assert.Equal(t, uint64(96), CalculateM(0.01, 10))
	assert.Equal(t, uint64(815), CalculateM(0.02, 100))
	assert.Equal(t, uint64(2), CalculateM(0.5, 1))
}

func TestCalculateK(t *testing.T) {
	assert.Equal(t, uint64(7), CalculateK(96, 10))
	assert.Equal(t, uint64(6), CalculateK(815, 100))
	assert.Equal(t, uint64(2), CalculateK(2, 1))
}

func TestCalculateKTruncatesIntegerDivision(t *testing.T) {
	// m/n truncates before the ceiling: floor(44/10)=4 gives ceil(4*ln2)=3.
	// Float division would give ceil(4.4*ln2)=4.
	assert.Equal(t, uint64(3), CalculateK(44, 10))
}
