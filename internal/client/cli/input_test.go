package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText_TrimsNewline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer

	got, err := GetSimpleText(r, "Enter text", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Contains(t, out.String(), "Enter text")
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("no newline"))
	var out bytes.Buffer

	got, err := GetSimpleText(r, "Enter text", &out)
	require.NoError(t, err)
	require.Equal(t, "no newline", got)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	old := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = old })

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, "s3cret", pw)
	require.Contains(t, out.String(), "Enter password")
}
