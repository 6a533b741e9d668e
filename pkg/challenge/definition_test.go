package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() Definition {
	return Definition{
		ID:          "sample",
		Title:       "Sample Challenge",
		Difficulty:  Medium,
		Description: "fix the bug",
		Files: map[string]string{
			"main.py": "print('broken')\n",
			"test.py": "assert True\n",
		},
		TestCommand: "python -m pytest test.py",
		Solution: map[string]string{
			"main.py": "print('fixed')\n",
			"test.py": "assert True\n",
		},
		Hints: []string{"first", "second"},
	}
}

func TestDefinition_Validate_OK(t *testing.T) {
	d := validDefinition()
	require.NoError(t, d.Validate())
}

func TestDefinition_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantMsg string
	}{
		{
			name:    "missing id",
			mutate:  func(d *Definition) { d.ID = "" },
			wantMsg: "no id",
		},
		{
			name:    "missing title",
			mutate:  func(d *Definition) { d.Title = "" },
			wantMsg: "title is required",
		},
		{
			name: "bad difficulty",
			mutate: func(d *Definition) {
				d.Difficulty = "Trivial"
			},
			wantMsg: "invalid difficulty",
		},
		{
			name: "missing test command",
			mutate: func(d *Definition) {
				d.TestCommand = ""
			},
			wantMsg: "test command is required",
		},
		{
			name: "no files",
			mutate: func(d *Definition) {
				d.Files = nil
			},
			wantMsg: "no starter files",
		},
		{
			name: "solution missing a file",
			mutate: func(d *Definition) {
				delete(d.Solution, "main.py")
			},
			wantMsg: "no solution counterpart",
		},
		{
			name: "solution has extra file",
			mutate: func(d *Definition) {
				d.Solution["extra.py"] = "x"
			},
			wantMsg: "no starter counterpart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefinition()
			tt.mutate(&d)
			err := d.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDefinition_FileNames_Sorted(t *testing.T) {
	d := validDefinition()
	assert.Equal(t,
		[]string{"main.py", "test.py"}, d.FileNames(),
	)
}

func TestDefinition_Hint(t *testing.T) {
	d := validDefinition()

	h, ok := d.Hint(0)
	assert.True(t, ok)
	assert.Equal(t, "first", h)

	h, ok = d.Hint(1)
	assert.True(t, ok)
	assert.Equal(t, "second", h)

	_, ok = d.Hint(2)
	assert.False(t, ok)
	_, ok = d.Hint(-1)
	assert.False(t, ok)
}

func TestDefinition_Summary(t *testing.T) {
	d := validDefinition()
	s := d.Summary()
	assert.Equal(t, ID("sample"), s.ID)
	assert.Equal(t, "Sample Challenge", s.Title)
	assert.Equal(t, Medium, s.Difficulty)
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"medium", Medium, false},
		{"Medium", Medium, false},
		{"HARD", Hard, false},
		{" expert ", Expert, false},
		{"easy", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDifficulty_Valid(t *testing.T) {
	for _, d := range Difficulties {
		assert.True(t, d.Valid())
	}
	assert.False(t, Difficulty("Easy").Valid())
}
