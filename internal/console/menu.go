// ABOUTME: The closed set of main menu commands.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Command is a main menu entry.
type Command int

// Menu commands in display order.
const (
	CmdRegisterPet Command = iota + 1
	CmdRegisterVisit
	CmdListOwners
	CmdListPets
	CmdHistory
	CmdUpdateOwner
	CmdUpdatePet
	CmdUpdateVisit
	CmdDeleteOwner
	CmdDeletePet
	CmdDeleteVisit
	CmdExit
)

var commandNames = map[Command]string{
	CmdRegisterPet:   "Register new pet",
	CmdRegisterVisit: "Register new visit",
	CmdListOwners:    "List owners",
	CmdListPets:      "List pets",
	CmdHistory:       "View a pet's clinical history",
	CmdUpdateOwner:   "Update owner",
	CmdUpdatePet:     "Update pet",
	CmdUpdateVisit:   "Update visit",
	CmdDeleteOwner:   "Delete owner",
	CmdDeletePet:     "Delete pet",
	CmdDeleteVisit:   "Delete visit",
	CmdExit:          "Exit",
}

// String returns the menu label.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "Command(" + strconv.Itoa(int(c)) + ")"
}

// ParseCommand parses a menu choice typed by the user.
func ParseCommand(s string) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || Command(n) < CmdRegisterPet || Command(n) > CmdExit {
		return 0, fmt.Errorf("invalid option %q", s)
	}
	return Command(n), nil
}

type menuSection struct {
	heading  string
	commands []Command
}

var menuSections = []menuSection{
	{"Manage records", []Command{CmdRegisterPet, CmdRegisterVisit}},
	{"View records", []Command{CmdListOwners, CmdListPets, CmdHistory}},
	{"Update records", []Command{CmdUpdateOwner, CmdUpdatePet, CmdUpdateVisit}},
	{"Delete records", []Command{CmdDeleteOwner, CmdDeletePet, CmdDeleteVisit}},
	{"", []Command{CmdExit}},
}

// PrintMenu writes the main menu.
func PrintMenu(w io.Writer) {
	Title(w, "Vet Clinic Records")
	for i, sec := range menuSections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if sec.heading != "" {
			label.Fprintln(w, sec.heading)
		}
		for _, c := range sec.commands {
			fmt.Fprintf(w, "%d. %s\n", int(c), c)
		}
	}
}
