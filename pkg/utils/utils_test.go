package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *date)

	date, err = ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, date)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestYesterday(t *testing.T) {
	reference := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Yesterday(reference))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 66.7, RoundWithOneDecimalPlace(200.0/3))
	assert.Equal(t, 33.33, RoundWithTwoDecimalPlace(100.0/3))
	assert.Equal(t, 0.0, RoundWithOneDecimalPlace(0))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 8)
	assert.Empty(t, strings.Trim(id, characters))
}
