// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"log/slog"

	"github.com/pkg/errors"

	"quakemarks/cvar"
)

// Efunc reports whether it handled the command.
type Efunc func(*CommandBuffer, Arguments) (bool, error)

type executors []Efunc

func (ex *executors) execute(c *CommandBuffer, s string) error {
	a := Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil // no tokens
	}
	if args[0].String() == "wait" {
		c.Wait()
		return nil
	}
	for _, e := range *ex {
		if ok, err := e(c, a); err != nil {
			return errors.Wrapf(err, "%q", a.Full())
		} else if ok {
			return nil
		}
	}

	slog.Warn("Unknown command", slog.String("name", args[0].String()))
	return nil
}

// Cvars executes "name [value]" lines on the cvar registry.
func Cvars(_ *CommandBuffer, a Arguments) (bool, error) {
	args := make([]string, 0, len(a.Args()))
	for _, q := range a.Args() {
		args = append(args, q.String())
	}
	return cvar.ExecuteArgs(args)
}
