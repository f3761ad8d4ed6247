// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf buffers config script text and executes it line by line.
package cbuf

import (
	"strings"
)

type CommandBuffer struct {
	buf string
	// toogle to add a wait to Execute,
	// causing the following commands to be executed on the next call
	wait      bool
	executors executors
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

func (c *CommandBuffer) AddText(text string) {
	c.buf = c.buf + text
}

func (c *CommandBuffer) InsertText(text string) {
	c.buf = text + "\n" + c.buf
}

// Pending reports whether text is left to execute.
func (c *CommandBuffer) Pending() bool {
	return len(c.buf) != 0
}

// Execute runs lines until the buffer is empty or a wait is hit. The
// first executor error stops execution, the rest of the buffer is kept.
func (c *CommandBuffer) Execute() error {
	for len(c.buf) != 0 {
		i := 0
		quote := false
	LineLoop:
		for i = 0; i < len(c.buf); i++ {
			switch c.buf[i] {
			case '"':
				quote = !quote
				continue LineLoop
			case ';':
				if quote {
					continue LineLoop
				}
				break LineLoop
			case '\n':
				break LineLoop
			}
		}
		// do not put ';' or '\n' in line
		line := c.buf[:i]
		// but remove this char as well
		if i < len(c.buf) {
			i++
		}
		c.buf = c.buf[i:]
		if err := c.executors.execute(c, line); err != nil {
			return err
		}
		if c.wait {
			// wait for the next call to continue executing
			c.wait = false
			return nil
		}
	}
	return nil
}

// Wait makes Execute return after the current line.
func (c *CommandBuffer) Wait() {
	c.wait = true
}

type QArg struct {
	a string
}

func (q QArg) String() string {
	return q.a
}

type Arguments struct {
	full string
	args []QArg
}

func (a Arguments) Full() string {
	return a.full
}

func (a Arguments) Args() []QArg {
	return a.args
}

// Parse splits a line at white space. Quoted text is one argument and
// "//" starts a comment.
func Parse(s string) Arguments {
	s = strings.TrimSpace(s)
	if i := commentStart(s); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	a := Arguments{full: s}
	for len(s) > 0 {
		s = strings.TrimLeft(s, " \t\r")
		if len(s) == 0 {
			break
		}
		if s[0] == '"' {
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				a.args = append(a.args, QArg{s[1:]})
				break
			}
			a.args = append(a.args, QArg{s[1 : end+1]})
			s = s[end+2:]
			continue
		}
		end := strings.IndexAny(s, " \t\r")
		if end < 0 {
			a.args = append(a.args, QArg{s})
			break
		}
		a.args = append(a.args, QArg{s[:end]})
		s = s[end:]
	}
	return a
}

func commentStart(s string) int {
	quote := false
	for i := 0; i+1 < len(s); i++ {
		switch {
		case s[i] == '"':
			quote = !quote
		case !quote && s[i] == '/' && s[i+1] == '/':
			return i
		}
	}
	return -1
}
