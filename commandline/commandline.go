// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"quakemarks/cvar"
)

var (
	radius      float32 = 16
	orientation float32
	output      string
	exec        string
	metricsAddr string
	verbose     bool

	subModel = boolInt{false, 0}
	sets     assignments
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

// assignments collects repeated "-set name=value" flags in order.
type assignments [][2]string

func (a *assignments) Set(s string) error {
	name, value, err := cvar.ParseAssignment(s)
	if err != nil {
		return err
	}
	*a = append(*a, [2]string{name, value})
	return nil
}

func (a *assignments) String() string {
	var parts []string
	for _, kv := range *a {
		parts = append(parts, kv[0]+"="+kv[1])
	}
	return strings.Join(parts, " ")
}

// float32Value is flag.Float64Var for float32.
type float32Value struct {
	p *float32
}

func (f float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return errors.Wrapf(err, "bad float %q", s)
	}
	*f.p = float32(v)
	return nil
}

func (f float32Value) String() string {
	if f.p == nil {
		return "0"
	}
	return strconv.FormatFloat(float64(*f.p), 'g', -1, 32)
}

func register(fs *flag.FlagSet) {
	fs.Var(float32Value{&radius}, "radius", "decal radius")
	fs.Var(float32Value{&orientation}, "orientation", "decal rotation in degrees")
	fs.StringVar(&output, "o", "", "write a snapshot of the mark call to this file")
	fs.StringVar(&exec, "exec", "", "config script with cvar lines to run before marking")
	fs.BoolVar(&verbose, "v", false, "log every fragment")
	fs.StringVar(&metricsAddr, "metrics", "", "serve /metrics on this address after marking")

	fs.Var(&subModel, "submodel", "Marks the inline model, optional model number")
	fs.Var(&sets, "set", "set a cvar, name=value, can be repeated")
}

func init() {
	register(flag.CommandLine)
}

func Radius() float32 {
	return radius
}

func Orientation() float32 {
	return orientation
}

func Output() string {
	return output
}

func Exec() string {
	return exec
}

func MetricsAddress() string {
	return metricsAddr
}

func Verbose() bool {
	return verbose
}

func SubModel() bool {
	return subModel.set
}

func SubModelNum() int {
	return subModel.num
}

// ApplyCvars sets all cvars given with -set in order. Names not
// registered before become user cvars.
func ApplyCvars() {
	for _, kv := range sets {
		if cv := cvar.Set(kv[0], kv[1]); cv.UserDefined() {
			slog.Warn("unknown cvar", slog.String("name", cv.Name()))
		}
	}
}
