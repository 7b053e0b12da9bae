package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх файлов процесса.
// Один bufio.Reader на весь сеанс: при вводе через pipe несколько строк
// (session id, затем токен) не теряются между вызовами ReadInput.
type Stdio struct {
	in     *os.File
	out    *os.File
	reader *bufio.Reader
}

// NewStdio работает с os.Stdin и os.Stdout.
func NewStdio() IO {
	return NewFileIO(os.Stdin, os.Stdout)
}

// NewFileIO работает с произвольной парой файлов (pipe в тестах).
func NewFileIO(in, out *os.File) *Stdio {
	return &Stdio{in: in, out: out, reader: bufio.NewReader(in)}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

// ReadInput печатает prompt и читает одну строку без пробелов по краям.
// Последняя строка без перевода строки тоже принимается.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	line, err := s.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword читает секрет без эха. Если stdin не терминал (pipe, CI),
// читается обычная строка.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		return s.ReadInput(prompt)
	}
	s.Printf("%s", prompt)
	secret, err := term.ReadPassword(fd)
	s.Println()
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) IsTerminal() bool {
	return term.IsTerminal(int(s.out.Fd()))
}
