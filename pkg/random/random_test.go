package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceIsDeterministicForSeed(t *testing.T) {
	//** Arrange
	first, second := NewSource(42), NewSource(42)

	//** Act
	firstValues, secondValues := make([]int, 0, 20), make([]int, 0, 20)
	for range 20 {
		firstValues = append(firstValues, first.Intn(1000))
		secondValues = append(secondValues, second.Intn(1000))
	}

	//** Assert
	assert.Equal(t, firstValues, secondValues)
}

func TestShuffleSliceKeepsInput(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e"}

	shuffled := ShuffleSlice(NewSource(7), values)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, values)
	assert.ElementsMatch(t, values, shuffled)
}

func TestSample(t *testing.T) {
	_, ok := Sample(NewSource(1), []int{})
	assert.False(t, ok)

	value, ok := Sample(NewSource(1), []int{3})
	assert.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestTwoDistinctIndices(t *testing.T) {
	source := NewSource(3)
	for range 200 {
		first, second := TwoDistinctIndices(source, 3)
		assert.NotEqual(t, first, second)
		assert.True(t, first >= 0 && first < 3)
		assert.True(t, second >= 0 && second < 3)
	}
}

func TestChooseWithoutRepetition(t *testing.T) {
	values := []string{"x", "y", "z"}

	chosen := Choose(NewSource(11), values, 3)

	assert.ElementsMatch(t, values, chosen)
	assert.Empty(t, Choose(NewSource(11), []string{}, 2))
}
