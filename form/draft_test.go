// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollshare/store"
)

func TestAddOption(t *testing.T) {
	d := &Draft{}

	d.SetOption("")
	assert.ErrorIs(t, d.AddOption(), ErrEmptyOption)

	d.SetOption("Red")
	require.NoError(t, d.AddOption())
	assert.Equal(t, "", d.Option, "pending text is cleared after add")

	d.SetOption("Red")
	assert.ErrorIs(t, d.AddOption(), ErrDuplicateOption)
	assert.Equal(t, "Red", d.Option, "rejected text stays pending")

	assert.Equal(t, []string{"Red"}, d.Options)
}

func TestAddOption_Limit(t *testing.T) {
	d := &Draft{}
	for i := 0; i < MaxOptions; i++ {
		d.SetOption(fmt.Sprintf("opt-%d", i))
		require.NoError(t, d.AddOption())
	}

	d.SetOption("one too many")
	assert.ErrorIs(t, d.AddOption(), ErrTooManyOptions)
	assert.Len(t, d.Options, MaxOptions)
}

func TestRemoveOption(t *testing.T) {
	d := &Draft{Options: []string{"a", "b", "c"}}

	assert.True(t, d.RemoveOption("b"))
	assert.Equal(t, []string{"a", "c"}, d.Options)
	assert.False(t, d.RemoveOption("missing"))
}

func TestCanSave(t *testing.T) {
	tests := []struct {
		name     string
		question string
		options  []string
		want     bool
	}{
		{"empty", "", nil, false},
		{"question only", "Color?", nil, false},
		{"one option", "Color?", []string{"Red"}, false},
		{"no question", "", []string{"Red", "Blue"}, false},
		{"ready", "Color?", []string{"Red", "Blue"}, true},
		{"whitespace question counts", " ", []string{"Red", "Blue"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := &Draft{Question: tc.question, Options: tc.options}
			assert.Equal(t, tc.want, d.CanSave())
		})
	}
}

func TestSave(t *testing.T) {
	s := store.New()
	d := &Draft{}
	d.SetQuestion("Color?")
	d.SetOption("Red")
	require.NoError(t, d.AddOption())

	_, ok := d.Save(s)
	assert.False(t, ok)
	assert.Empty(t, s.State().Polls)

	d.SetOption("Blue")
	require.NoError(t, d.AddOption())

	p, ok := d.Save(s)
	require.True(t, ok)
	assert.Equal(t, "Color?", p.Question)
	assert.Equal(t, []string{"Red", "Blue"}, p.Options)
	assert.Len(t, s.State().Polls, 1)
	assert.Equal(t, Draft{}, *d, "draft resets after save")
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		question string
		options  []string
		wantErr  error
	}{
		{"valid", "Color?", []string{"Red", "Blue"}, nil},
		{"empty question", "", []string{"Red", "Blue"}, ErrCannotSave},
		{"one option", "Color?", []string{"Red"}, ErrCannotSave},
		{"empty option", "Color?", []string{"Red", ""}, ErrEmptyOption},
		{"duplicate", "Color?", []string{"Red", "Red"}, ErrDuplicateOption},
		{"eleven options", "Count?", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, ErrTooManyOptions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := FromRequest(tc.question, tc.options)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.CanSave())
		})
	}
}

func TestSetters_ReplaceText(t *testing.T) {
	d := &Draft{}
	d.SetQuestion("Colour?")
	d.SetQuestion("Color?")
	d.SetOption("Rd")
	d.SetOption("Red")

	assert.Equal(t, "Color?", d.Question)
	assert.Equal(t, "Red", d.Option)
	assert.Empty(t, d.Options, "setting text never adds an option")
}
