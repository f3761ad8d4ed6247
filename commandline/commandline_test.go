// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"testing"
)

func TestBoolInt(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	a := boolInt{false, 4}
	b := boolInt{false, 5}
	c := boolInt{true, 6}
	d := boolInt{false, 7}
	e := boolInt{false, 8}
	f := boolInt{true, 9}
	flags.Var(&a, "a", "usage")
	flags.Var(&b, "b", "usage")
	flags.Var(&c, "c", "usage")
	flags.Var(&d, "d", "usage")
	flags.Var(&e, "e", "usage")
	flags.Var(&f, "f", "usage")
	if err := flags.Parse([]string{"-a", "-b=3", "-e=true", "-f=false"}); err != nil {
		t.Error(err)
	}
	if a.set != true {
		t.Errorf("a.set = %v", a.set)
	}
	if b.set != true {
		t.Errorf("b.set = %v", b.set)
	}
	if c.set != true {
		t.Errorf("c.set = %v", c.set)
	}
	if d.set != false {
		t.Errorf("d.set = %v", d.set)
	}
	if e.set != true {
		t.Errorf("e.set = %v", e.set)
	}
	if f.set != false {
		t.Errorf("f.set = %v", f.set)
	}
	if a.num != 4 {
		t.Errorf("a.num = %v", a.num)
	}
	if b.num != 3 {
		t.Errorf("b.num = %v", b.num)
	}
	if c.num != 6 {
		t.Errorf("c.num = %v", c.num)
	}
	if d.num != 7 {
		t.Errorf("d.num = %v", d.num)
	}
}

func TestAssignments(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	var a assignments
	flags.Var(&a, "set", "usage")
	if err := flags.Parse([]string{"-set", "ter_minmarkradius=2", "-set=r_markdebug = 1", "-set", "x="}); err != nil {
		t.Fatal(err)
	}
	want := [][2]string{{"ter_minmarkradius", "2"}, {"r_markdebug", "1"}, {"x", ""}}
	if len(a) != len(want) {
		t.Fatalf("assignments = %v, want %v", a, want)
	}
	for i, kv := range want {
		if a[i] != kv {
			t.Errorf("assignment %d = %v, want %v", i, a[i], kv)
		}
	}
	if got := a.String(); got != "ter_minmarkradius=2 r_markdebug=1 x=" {
		t.Errorf("String() = %q", got)
	}

	flags.SetOutput(nopWriter{})
	for _, bad := range []string{"novalue", "=3"} {
		if err := flags.Parse([]string{"-set", bad}); err == nil {
			t.Errorf("-set %q accepted", bad)
		}
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func TestFloat32Value(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	flags.SetOutput(nopWriter{})
	r := float32(16)
	flags.Var(float32Value{&r}, "radius", "usage")
	if err := flags.Parse([]string{"-radius", "2.5"}); err != nil {
		t.Fatal(err)
	}
	if r != 2.5 {
		t.Errorf("radius = %v, want 2.5", r)
	}
	if err := flags.Parse([]string{"-radius", "big"}); err == nil {
		t.Errorf("-radius big accepted")
	}
}

func TestRegister(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	register(&flags)
	defer func() {
		radius, orientation, output, exec = 16, 0, "", ""
		subModel = boolInt{false, 0}
		sets = nil
	}()
	if err := flags.Parse([]string{"-radius=8", "-orientation", "45", "-o", "out.snap", "-submodel=2", "-exec", "marks.cfg", "-set", "r_markdebug=1"}); err != nil {
		t.Fatal(err)
	}
	if Radius() != 8 || Orientation() != 45 || Output() != "out.snap" || Exec() != "marks.cfg" {
		t.Errorf("Radius() = %v, Orientation() = %v, Output() = %q", Radius(), Orientation(), Output())
	}
	if !SubModel() || SubModelNum() != 2 {
		t.Errorf("SubModel() = %v, SubModelNum() = %v", SubModel(), SubModelNum())
	}
	if len(sets) != 1 || sets[0] != [2]string{"r_markdebug", "1"} {
		t.Errorf("sets = %v", sets)
	}
}
