package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDifficulty(t *testing.T) {
	assert.True(t, ValidDifficulty("beginner"))
	assert.True(t, ValidDifficulty("intermediate"))
	assert.True(t, ValidDifficulty("advanced"))
	assert.False(t, ValidDifficulty("expert"))
	assert.False(t, ValidDifficulty(""))
	assert.False(t, ValidDifficulty("Beginner"))
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("garage"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Kitchen"))
}

func TestValidEstimatedHours(t *testing.T) {
	assert.True(t, ValidEstimatedHours(1))
	assert.True(t, ValidEstimatedHours(48))
	assert.False(t, ValidEstimatedHours(0))
	assert.False(t, ValidEstimatedHours(49))
	assert.False(t, ValidEstimatedHours(-3))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("draft"))
	assert.True(t, ValidStatus("published"))
	assert.True(t, ValidStatus("archived"))
	assert.False(t, ValidStatus("deleted"))
	assert.False(t, ValidStatus(""))
}
