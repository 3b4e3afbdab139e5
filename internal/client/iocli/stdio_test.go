package iocli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStdio(t *testing.T) {
	assert.NotNil(t, NewStdio())
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(""), &out)

	s.Println("hello", "world")
	s.Printf("test %d %s", 1, "abc")
	_, err := s.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc!", out.String())
}

func TestReadInput(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("  user input \nsecond\n"), &out)

	first, err := s.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", first)
	assert.Equal(t, "Prompt: ", out.String())

	// Последняя строка без перевода строки тоже читается
	second, err := s.ReadInput("")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	_, err = s.ReadInput("")
	assert.ErrorIs(t, err, io.EOF)
}

// Из pipe пароль читается как обычная строка, без приглашения
func TestReadPassword_NotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		_, _ = w.Write([]byte("s3cret\n"))
		_ = w.Close()
	}()
	defer func() { _ = r.Close() }()

	var out bytes.Buffer
	s := New(r, &out)
	assert.False(t, s.IsTerminal())

	secret, err := s.ReadPassword("Token: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
	assert.Empty(t, out.String())
}
