// ABOUTME: Rendering of titles, owners, pets, and visit histories.
// ABOUTME: Dates are always shown as DD-MM-YYYY.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vetclinic/internal/models"
)

const width = 60

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	faint      = color.New(color.Faint)
	label      = color.New(color.Bold)
	good       = color.New(color.FgGreen)
	warning    = color.New(color.FgYellow)
	danger     = color.New(color.FgRed)
)

// Title prints a centered banner.
func Title(w io.Writer, text string) {
	rule := strings.Repeat("=", width)
	pad := (width - len([]rune(text))) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(w, "\n%s\n", rule)
	titleColor.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), text)
	fmt.Fprintf(w, "%s\n\n", rule)
}

func separator(w io.Writer) {
	faint.Fprintln(w, strings.Repeat("-", 30))
}

// Owner prints one owner.
func Owner(w io.Writer, o *models.Owner) {
	fmt.Fprintf(w, "%s %d\n", label.Sprint("ID:"), o.ID)
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Name:"), o.Name)
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Phone:"), orDash(o.Phone))
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Address:"), orDash(o.Address))
}

// Owners prints a list of owners.
func Owners(w io.Writer, owners []*models.Owner) {
	for _, o := range owners {
		Owner(w, o)
		separator(w)
	}
}

// Pet prints one pet with its owner.
func Pet(w io.Writer, p *models.Pet) {
	fmt.Fprintf(w, "%s %d\n", label.Sprint("ID:"), p.ID)
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Name:"), p.Name)
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Species:"), orDash(p.Species))
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Breed:"), orDash(p.Breed))
	fmt.Fprintf(w, "%s %d\n", label.Sprint("Age:"), p.Age)
	fmt.Fprintf(w, "%s %s (ID: %d)\n", label.Sprint("Owner:"), p.OwnerLabel(), p.OwnerID)
}

// Pets prints a list of pets.
func Pets(w io.Writer, pets []*models.Pet) {
	for _, p := range pets {
		Pet(w, p)
		separator(w)
	}
}

// Visit prints one visit.
func Visit(w io.Writer, v *models.Visit) {
	fmt.Fprintf(w, "%s %d\n", label.Sprint("Visit ID:"), v.ID)
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Date:"), models.FormatDisplayDate(v.Date))
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Reason:"), orDash(v.Reason))
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Diagnosis:"), orDash(v.Diagnosis))
}

// History prints a pet's visits under a heading.
func History(w io.Writer, p *models.Pet, visits []*models.Visit) {
	fmt.Fprintf(w, "\nClinical history of %s (ID: %d):\n", p.Name, p.ID)
	for _, v := range visits {
		Visit(w, v)
		separator(w)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
