package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализация IO поверх потоков процесса
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	inFile *os.File
}

// NewStdio возвращает IO для os.Stdin/os.Stdout
func NewStdio() IO {
	return &Stdio{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		inFile: os.Stdin,
	}
}

// New возвращает IO поверх произвольных потоков (не терминал)
func New(in io.Reader, out io.Writer) IO {
	s := &Stdio{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		s.inFile = f
	}
	return s
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// IsTerminal сообщает, подключен ли ввод к терминалу
func (s *Stdio) IsTerminal() bool {
	return s.inFile != nil && term.IsTerminal(int(s.inFile.Fd()))
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	return s.readLine()
}

// ReadPassword читает секрет без эха. Если ввод не терминал
// (pipe, файл), читает обычную строку.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if !s.IsTerminal() {
		return s.readLine()
	}

	s.Printf("%s", prompt)
	secret, err := term.ReadPassword(int(s.inFile.Fd()))
	s.Println()
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func (s *Stdio) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
