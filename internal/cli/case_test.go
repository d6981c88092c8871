package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lealre/comments-backend/internal/casing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestCaseCommand(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"case", "camel", "hello world"}, "helloWorld\n"},
		{[]string{"case", "camel", "Make-this_cool"}, "makeThisCool\n"},
		{[]string{"case", "dot", "Make-this_cool"}, "make.this.cool\n"},
		{[]string{"case", "kebab", "makeThis_cool"}, "make-this-cool\n"},
		{[]string{"case", "kebab", "Hello", "World"}, "hello-world\n"},
		{[]string{"case", "camel", "   "}, "\n"},
	}
	for _, c := range cases {
		out, err := execute(t, c.args...)
		require.NoError(t, err, "args %v", c.args)
		require.Equal(t, c.want, out, "args %v", c.args)
	}
}

func TestCaseCommandErrors(t *testing.T) {
	_, err := execute(t, "case", "snake", "hello world")
	require.ErrorIs(t, err, casing.ErrUnknownStyle)

	_, err = execute(t, "case", "camel")
	require.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"serve", "setup", "case"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}

	setup, _, err := root.Find([]string{"setup"})
	require.NoError(t, err)
	require.NotNil(t, setup.Flags().Lookup("reset-indexes"))
}
