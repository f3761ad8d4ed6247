// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1
	NOTIFY  flag = 1 << 1
	ROM     flag = 1 << 6
	CHEAT   flag = 1 << 9
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	notify   bool
	rom      bool
	cheat    bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

func All() []*Cvar {
	return cvarArray
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) Notify() bool {
	return cv.notify
}

func (cv *Cvar) Cheat() bool {
	return cv.cheat
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.notify {
		slog.Info("cvar changed", slog.String("name", cv.name), slog.String("value", s))
	}
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		v := strconv.FormatInt(int64(value), 10)
		cv.SetByString(v)
	} else {
		v := strconv.FormatFloat(float64(value), 'f', -1, 32)
		cv.SetByString(v)
	}
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0" && cv.stringValue != ""
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[strings.ToLower(name)]
	return cv, ok
}

func GetByID(id int) (*Cvar, error) {
	if id < 0 || id >= len(cvarArray) {
		return nil, errors.Errorf("cvar id %d out of bounds", id)
	}
	return cvarArray[id], nil
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.SetByString(value)
	pos := len(cvarArray)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	cv.id = pos
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	name = strings.ToLower(name)
	if _, ok := cvarByName[name]; ok {
		return nil, errors.Errorf("Can't register variable %s, already defined", name)
	}

	cv := create(name, value)

	if flags&ARCHIVE != 0 {
		cv.archive = true
	}
	if flags&NOTIFY != 0 {
		cv.notify = true
	}
	if flags&ROM != 0 {
		cv.rom = true
	}
	if flags&CHEAT != 0 {
		cv.cheat = true
	}

	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		panic(err.Error())
	}
	return cv
}

// Set changes an existing cvar or creates a user defined one.
func Set(name, value string) *Cvar {
	if cv, ok := Get(name); ok {
		cv.SetByString(value)
		return cv
	}
	cv := create(strings.ToLower(name), value)
	cv.user = true
	return cv
}

// Execute handles a console line of the form "name [value]". It reports
// whether the line named a cvar.
func Execute(line string) (bool, error) {
	return ExecuteArgs(strings.Fields(line))
}

// ExecuteArgs is Execute on an already split line.
func ExecuteArgs(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := Get(args[0])
	if !ok {
		return false, nil
	}
	switch len(args) {
	case 1:
		slog.Info("cvar",
			slog.String("name", cv.Name()),
			slog.String("value", cv.String()),
			slog.String("default", cv.Default()),
			slog.Bool("cheat", cv.Cheat()))
	case 2:
		cv.SetByString(args[1])
	default:
		return true, errors.Errorf("%s <value>: too many arguments", cv.Name())
	}
	return true, nil
}

// ParseAssignment splits "name=value" as used on the command line.
func ParseAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.Errorf("bad cvar assignment %q, want name=value", s)
	}
	return name, strings.TrimSpace(value), nil
}

// ResetAll resets every cvar to its default value.
func ResetAll() {
	for _, cv := range All() {
		cv.Reset()
	}
}

// Names returns all registered names, sorted.
func Names() []string {
	names := make([]string, 0, len(cvarByName))
	for n := range cvarByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
