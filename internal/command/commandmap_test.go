package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMapRunsRegisteredHandler(t *testing.T) {
	var got []string
	defaults := 0
	m := NewCommandMap().
		SetDefaultCommand(func(string) { defaults++ }).
		AddCommand("todo", func(arg string) { got = append(got, "todo:"+arg) }).
		AddCommand("list", func(arg string) { got = append(got, "list:"+arg) })

	m.Run("todo", "buy milk")
	m.Run("list", "")

	assert.Equal(t, []string{"todo:buy milk", "list:"}, got)
	assert.Zero(t, defaults)
}

func TestCommandMapUnknownNameRunsDefaultOnce(t *testing.T) {
	var attempts []string
	handled := 0
	m := NewCommandMap().
		SetDefaultCommand(func(arg string) { attempts = append(attempts, arg) }).
		AddCommand("todo", func(string) { handled++ })
	before := m.Names()

	m.Run("frobnicate", "all the things")

	assert.Equal(t, []string{"frobnicate all the things"}, attempts)
	assert.Zero(t, handled)
	assert.Equal(t, before, m.Names())
	assert.False(t, m.Has("frobnicate"))
}

func TestCommandMapIsCaseSensitive(t *testing.T) {
	var attempts []string
	m := NewCommandMap().
		SetDefaultCommand(func(arg string) { attempts = append(attempts, arg) }).
		AddCommand("list", func(string) { t.Fatal("LIST must not match list") })

	m.Run("LIST", "")

	assert.Equal(t, []string{"LIST"}, attempts)
}

func TestCommandMapDuplicateRegistrationPanics(t *testing.T) {
	m := NewCommandMap().AddCommand("bye", func(string) {})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*ContractViolation)
		assert.True(t, ok, "expected *ContractViolation, got %T", r)
	}()
	m.AddCommand("bye", func(string) {})
}

func TestCommandMapRejectsEmptyName(t *testing.T) {
	assert.Panics(t, func() { NewCommandMap().AddCommand("", func(string) {}) })
}

func TestCommandMapNamesSorted(t *testing.T) {
	m := NewCommandMap().
		AddCommand("todo", func(string) {}).
		AddCommand("bye", func(string) {}).
		AddCommand("list", func(string) {})

	assert.Equal(t, []string{"bye", "list", "todo"}, m.Names())
}

func TestSplit(t *testing.T) {
	tests := []struct {
		line     string
		name     string
		argument string
	}{
		{line: "todo buy milk", name: "todo", argument: "buy milk"},
		{line: "  list  ", name: "list", argument: ""},
		{line: "deadline x /by ", name: "deadline", argument: "x /by"},
		{line: "find  two  spaces", name: "find", argument: "two  spaces"},
		{line: "mark\t2", name: "mark", argument: "2"},
		{line: "", name: "", argument: ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, argument := Split(tt.line)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.argument, argument)
		})
	}
}
