package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		sys  int
		want Classification
	}{
		{0, Good},
		{120, Good},
		{140, Good},
		{141, High},
		{150, High},
		{151, VeryHigh},
		{220, VeryHigh},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.sys), "systolic %d", c.sys)
	}
}

func TestClassificationLabels(t *testing.T) {
	assert.Equal(t, "Good", Good.String())
	assert.Equal(t, "High", High.String())
	assert.Equal(t, "Very High", VeryHigh.String())
}

func TestHandLabel(t *testing.T) {
	assert.Equal(t, "Hand: Left", Reading{LeftHand: true}.HandLabel())
	assert.Equal(t, "Hand: Right", Reading{LeftHand: false}.HandLabel())
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
