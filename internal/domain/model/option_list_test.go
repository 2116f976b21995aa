package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionList_Transitions(t *testing.T) {
	var l OptionList[Customer]
	assert.Equal(t, LoadIdle, l.State)

	l.Loading()
	assert.Equal(t, LoadLoading, l.State)

	l.Loaded([]Customer{{ID: "1"}})
	assert.Equal(t, LoadLoaded, l.State)
	assert.Len(t, l.Items, 1)

	l.Failed(errors.New("boom"))
	assert.Equal(t, LoadFailed, l.State)
	assert.Equal(t, "boom", l.Error)
	assert.Len(t, l.Items, 1, "failure keeps previous items")

	l.Loading()
	assert.Empty(t, l.Error)
}

func TestOptionList_Clone(t *testing.T) {
	l := OptionList[Customer]{State: LoadLoaded, Items: []Customer{{ID: "1"}}}

	c := l.Clone()
	c.Items[0].ID = "2"

	assert.Equal(t, ID("1"), l.Items[0].ID)
}

func TestLoadState_String(t *testing.T) {
	assert.Equal(t, "idle", LoadIdle.String())
	assert.Equal(t, "loading", LoadLoading.String())
	assert.Equal(t, "loaded", LoadLoaded.String())
	assert.Equal(t, "failed", LoadFailed.String())
	assert.Equal(t, "unknown", LoadState(99).String())
}

func TestLoadState_TextRoundTrip(t *testing.T) {
	var s LoadState
	assert.NoError(t, s.UnmarshalText([]byte("failed")))
	assert.Equal(t, LoadFailed, s)

	assert.Error(t, s.UnmarshalText([]byte("pending")))
}
