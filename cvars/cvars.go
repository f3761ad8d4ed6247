// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"quakemarks/cvar"
)

var (
	MarkDebug            *cvar.Cvar
	MarkerOffset         *cvar.Cvar
	TerrainMinMarkRadius *cvar.Cvar
)

func init() {
	MarkDebug = cvar.MustRegister("r_markdebug", "0", cvar.NONE)
	MarkerOffset = cvar.MustRegister("r_markeroffset", "0", cvar.CHEAT)
	TerrainMinMarkRadius = cvar.MustRegister("ter_minmarkradius", "8", cvar.ARCHIVE)
}
