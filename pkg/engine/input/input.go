package input

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInterrupted is returned when Ctrl+C is read in raw mode
var ErrInterrupted = errors.New("interrupted")

// Reader reads single keys and whole lines from a terminal or any other
// byte stream. Raw mode is only entered around single-key reads, and only
// when the source is a terminal.
type Reader struct {
	r   *bufio.Reader
	fd  int
	tty bool
}

// NewReader wraps r. If r is a terminal it is put into raw mode for each
// ReadKey.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{r: bufio.NewReader(r), fd: -1}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rd.fd = int(f.Fd())
		rd.tty = true
	}
	return rd
}

// escape sequence final bytes after ESC [ or ESC O
var escapeCodes = map[byte]string{
	'A': "arrow_up",
	'B': "arrow_down",
	'C': "arrow_right",
	'D': "arrow_left",
	'H': "home",
	'F': "end",
	'E': "center",
}

// vt-style sequences: ESC [ <n> ~
var tildeCodes = map[string]string{
	"1": "home",
	"4": "end",
	"5": "page_up",
	"6": "page_down",
	"7": "home",
	"8": "end",
}

// ReadKey reads one key press and returns its code: the character itself for
// printable keys, or a name such as "arrow_up", "page_down" or "escape".
// Unknown escape sequences are returned as "".
func (rd *Reader) ReadKey() (string, error) {
	if rd.tty {
		oldState, err := term.MakeRaw(rd.fd)
		if err != nil {
			return "", err
		}
		defer term.Restore(rd.fd, oldState)
	}

	b1, err := rd.r.ReadByte()
	if err != nil {
		return "", err
	}
	switch {
	case b1 == 3:
		return "", ErrInterrupted
	case b1 == '\n' || b1 == '\r':
		return "enter", nil
	case b1 == 0x1b:
		return rd.readEscape()
	case b1 >= 32 && b1 < 127:
		return string(b1), nil
	}
	return "", nil
}

// readEscape decodes what follows an ESC byte. A lone ESC is "escape".
func (rd *Reader) readEscape() (string, error) {
	if rd.r.Buffered() == 0 && rd.tty {
		return "escape", nil
	}
	b2, err := rd.r.ReadByte()
	if err == io.EOF {
		return "escape", nil
	}
	if err != nil {
		return "", err
	}
	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		rd.r.UnreadByte()
		return "escape", nil
	}

	var num []byte
	for {
		b, err := rd.r.ReadByte()
		if err != nil {
			return "", err
		}
		if b >= '0' && b <= '9' {
			num = append(num, b)
			continue
		}
		if b == '~' {
			return tildeCodes[string(num)], nil
		}
		return escapeCodes[b], nil
	}
}

// ReadLine reads a line of input without the trailing newline
func (rd *Reader) ReadLine() (string, error) {
	line, err := rd.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
