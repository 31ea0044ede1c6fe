package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "SCHEDULED", StatusScheduled.String())
	assert.Equal(t, "FINISHED", StatusFinished.String())
	assert.Equal(t, "ABANDONED", StatusAbandoned.String())
	assert.Equal(t, "STATUS(99)", Status(99).String())
	assert.Equal(t, "STATUS(-1)", Status(-1).String())
}

func TestStatusMarshalsAsName(t *testing.T) {
	data, err := json.Marshal(StatusPostponed)
	require.NoError(t, err)
	assert.Equal(t, `"POSTPONED"`, string(data))
}
