// Package linereader assembles logical configuration lines out of physical
// input lines, joining backslash-continued lines into one, grounded on
// original_source/src/datastore/interp.c's s_getline.
package linereader

import (
	"bufio"
	"io"
	"strings"
)

// Context tracks line-number bookkeeping and EOF state across repeated
// ReadLogicalLine calls against the same underlying stream, mirroring the
// original's per-interpreter m_lr_ctx.
type Context struct {
	r      *bufio.Reader
	lineno int
	gotEOF bool
}

// New wraps r for logical-line reading.
func New(r io.Reader) *Context {
	return &Context{r: bufio.NewReader(r)}
}

// Lineno returns the physical line number most recently consumed.
func (c *Context) Lineno() int { return c.lineno }

// AtEOF reports whether the underlying stream has been fully drained.
func (c *Context) AtEOF() bool { return c.gotEOF }

// ReadLogicalLine reads and trailing-whitespace-trims physical lines,
// joining any line ending in a backslash (after trimming) to the next
// physical line, until a line without a trailing backslash is found or EOF
// is reached. ok is false only once the stream is fully drained with no
// further content to return.
func (c *Context) ReadLogicalLine() (line string, ok bool, err error) {
	if c.gotEOF {
		return "", false, nil
	}

	var b strings.Builder
	for {
		raw, rerr := c.r.ReadString('\n')
		if len(raw) == 0 && rerr != nil {
			c.gotEOF = true
			if b.Len() > 0 {
				return b.String(), true, nil
			}
			if rerr == io.EOF {
				return "", false, nil
			}
			return "", false, rerr
		}

		c.lineno++
		trimmed := strings.TrimRight(raw, " \t\r\n")

		if strings.HasSuffix(trimmed, "\\") {
			b.WriteString(strings.TrimSuffix(trimmed, "\\"))
			if rerr != nil {
				// backslash on the final, unterminated line: nothing more
				// will ever arrive to continue onto.
				c.gotEOF = true
				return b.String(), true, nil
			}
			continue
		}

		b.WriteString(trimmed)
		if rerr != nil {
			c.gotEOF = true
		}
		return b.String(), true, nil
	}
}
