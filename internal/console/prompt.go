package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Input is a buffered line reader shared by the credential prompt and Loop,
// so lines read ahead by one are still seen by the other.
type Input struct {
	*bufio.Reader
	file *os.File
}

func NewInput(r io.Reader) *Input {
	in := &Input{Reader: bufio.NewReader(r)}
	if file, ok := r.(*os.File); ok {
		in.file = file
	}
	return in
}

func (in *Input) terminal() (int, bool) {
	if in.file == nil || !term.IsTerminal(int(in.file.Fd())) {
		return 0, false
	}
	return int(in.file.Fd()), true
}

func (in *Input) readLine(what string) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptCredentials asks for whichever of username and password is empty.
// The password is read without echo when in is a terminal.
func PromptCredentials(in *Input, out io.Writer, username, password string) (string, string, error) {
	if username == "" {
		fmt.Fprint(out, "نام کاربری: ")
		line, err := in.readLine("username")
		if err != nil {
			return "", "", err
		}
		username = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Fprint(out, "رمز عبور: ")
		if fd, ok := in.terminal(); ok {
			secret, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", "", fmt.Errorf("read password: %w", err)
			}
			password = string(secret)
		} else {
			line, err := in.readLine("password")
			if err != nil {
				return "", "", err
			}
			password = line
		}
	}

	return username, password, nil
}
