package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// The prompt functions are indirections so tests can script them.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getConfirmation = GetConfirmation
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The surrounding whitespace is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line or
// EOF. Lines are joined with '\n' and the result is trimmed.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetConfirmation asks a y/N question. Only "y" and "yes" (any case) confirm;
// an empty answer or EOF declines.
func GetConfirmation(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(reader, prompt+" (y/N)", w)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
