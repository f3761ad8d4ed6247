// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import "testing"

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in    string
		wantF string
		wantA []QArg
	}{
		{
			in:    `r_markdebug 1`,
			wantF: `r_markdebug 1`,
			wantA: []QArg{{"r_markdebug"}, {"1"}},
		},
		{
			in:    `ter_minmarkradius "12.5" // small decals skip terrain`,
			wantF: `ter_minmarkradius "12.5"`,
			wantA: []QArg{{"ter_minmarkradius"}, {"12.5"}},
		},
		{
			in:    ` r_markeroffset	"a // b"  `,
			wantF: `r_markeroffset	"a // b"`,
			wantA: []QArg{{"r_markeroffset"}, {"a // b"}},
		},
		{
			in:    `name "open quote`,
			wantF: `name "open quote`,
			wantA: []QArg{{"name"}, {"open quote"}},
		},
		{
			in:    `// only a comment`,
			wantF: ``,
			wantA: nil,
		},
	} {
		arg := Parse(tc.in)
		if tc.wantF != arg.Full() {
			t.Errorf("Parse(%q).Full()=%q, want %q", tc.in, arg.Full(), tc.wantF)
		}
		as := arg.Args()
		if len(tc.wantA) != len(as) {
			t.Fatalf("Parse(%q).Args() has len(%d), want %d", tc.in, len(as), len(tc.wantA))
		}
		for i := range tc.wantA {
			if tc.wantA[i] != as[i] {
				t.Errorf("Parse(%q) Arg[%d]=%q, want %q", tc.in, i, as[i], tc.wantA[i])
			}
		}
	}
}
