package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "England", titleCase("ENGLAND"))
	assert.Equal(t, "Österreich", titleCase("ÖSTERREICH"))
	assert.Equal(t, "Bosnia And Herzegovina", titleCase("  BOSNIA AND  HERZEGOVINA "))
	assert.Equal(t, "", titleCase("   "))
}

func TestParseStadiumLine(t *testing.T) {
	name, city, ok := parseStadiumLine("Stadium: Anfield (Liverpool)")
	require.True(t, ok)
	assert.Equal(t, "Anfield", name)
	assert.Equal(t, "Liverpool", city)

	name, city, ok = parseStadiumLine("Stadium: Wembley")
	require.True(t, ok)
	assert.Equal(t, "Wembley", name)
	assert.Empty(t, city)

	_, _, ok = parseStadiumLine("no separator here")
	assert.False(t, ok)
}

func TestParseCapacityLine(t *testing.T) {
	capacity, ok := parseCapacityLine("Capacity: 61 276")
	require.True(t, ok)
	assert.Equal(t, 61276, capacity)

	_, ok = parseCapacityLine("Capacity: unknown")
	assert.False(t, ok)
}
