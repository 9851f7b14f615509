// ABOUTME: Interactive menu loop driving the record service.
// ABOUTME: Unexpected failures are logged as critical and end the session with an apology.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/harperreed/vetclinic/internal/clinic"
	"github.com/harperreed/vetclinic/internal/logging"
	"github.com/harperreed/vetclinic/internal/models"
	"github.com/harperreed/vetclinic/internal/storage"
	"github.com/rs/zerolog"
)

// Console is the interactive front end.
type Console struct {
	svc     *clinic.Service
	p       *Prompter
	out     io.Writer
	log     zerolog.Logger
	logPath string
}

// New creates a Console. logPath is shown to the user when something goes wrong.
func New(svc *clinic.Service, p *Prompter, out io.Writer, logger zerolog.Logger, logPath string) *Console {
	return &Console{
		svc:     svc,
		p:       p,
		out:     out,
		log:     logger.With().Str("component", "console").Logger(),
		logPath: logPath,
	}
}

// Run shows the menu until the user exits, input ends, or ctx is done.
// An unexpected error ends the loop and is returned.
func (c *Console) Run(ctx context.Context) error {
	c.log.Info().Msg("application started")
	defer c.log.Info().Msg("application closed")
	c.p.WithContext(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		PrintMenu(c.out)
		choice, err := c.p.Ask("\nChoose an option: ")
		if stopped(err) {
			return c.interrupted(ctx)
		}
		if err != nil {
			return c.critical("read menu choice", err)
		}

		cmd, err := ParseCommand(choice)
		if err != nil {
			c.p.Notify("Invalid option. Please try again.")
		} else {
			if cmd == CmdExit {
				fmt.Fprintln(c.out, "Thank you for using the system. Goodbye!")
				return nil
			}
			err := c.safely(cmd)
			if stopped(err) {
				return c.interrupted(ctx)
			}
			if err != nil && !c.expected(err) {
				return c.critical(cmd.String(), err)
			}
		}

		if _, err := c.p.Ask("\nPress Enter to continue..."); err != nil {
			return c.interrupted(ctx)
		}
	}
}

// stopped reports whether err means input ended or the session was interrupted.
func stopped(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// interrupted ends the loop quietly, noting an interruption when ctx is done.
func (c *Console) interrupted(ctx context.Context) error {
	if ctx.Err() != nil {
		fmt.Fprintln(c.out, "\nInterrupted. Goodbye!")
		c.log.Info().Err(ctx.Err()).Msg("session interrupted")
	}
	return nil
}

// safely runs one action, turning a panic into an error.
func (c *Console) safely(cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("stack", string(debug.Stack())).Msg("recovered panic")
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Dispatch(cmd)
}

// Dispatch runs the action for cmd.
func (c *Console) Dispatch(cmd Command) error {
	switch cmd {
	case CmdRegisterPet:
		return c.registerPet()
	case CmdRegisterVisit:
		return c.registerVisit()
	case CmdListOwners:
		return c.listOwners()
	case CmdListPets:
		return c.listPets()
	case CmdHistory:
		return c.history()
	case CmdUpdateOwner:
		return c.updateOwner()
	case CmdUpdatePet:
		return c.updatePet()
	case CmdUpdateVisit:
		return c.updateVisit()
	case CmdDeleteOwner:
		return c.deleteOwner()
	case CmdDeletePet:
		return c.deletePet()
	case CmdDeleteVisit:
		return c.deleteVisit()
	case CmdExit:
		return nil
	default:
		return fmt.Errorf("unknown command %d", int(cmd))
	}
}

// expected reports whether err is a normal outcome, telling the user about it.
func (c *Console) expected(err error) bool {
	switch {
	case errors.Is(err, clinic.ErrCancelled):
		c.p.Notify("Operation cancelled.")
	case errors.Is(err, clinic.ErrNotFound),
		errors.Is(err, clinic.ErrInvalidInput),
		errors.Is(err, clinic.ErrNameConflict):
		c.p.Notify(danger.Sprint(capitalize(err.Error()) + "."))
	case errors.Is(err, storage.ErrDuplicateName),
		errors.Is(err, storage.ErrMissingParent),
		errors.Is(err, storage.ErrStore):
		c.p.Notify(danger.Sprintf("The operation could not be completed. See %s for details.", c.logPath))
	default:
		return false
	}
	return true
}

func (c *Console) critical(action string, err error) error {
	logging.Critical(c.log).Err(err).Str("action", action).Msg("unexpected error")
	fmt.Fprintf(c.out, "\n%s\n", danger.Sprintf("An unexpected error occurred: %v", err))
	fmt.Fprintf(c.out, "Please check the log file '%s' for details.\n", c.logPath)
	return err
}

func (c *Console) success(format string, args ...any) {
	good.Fprintf(c.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (c *Console) report(res *clinic.UpdateResult, kind string) {
	for _, w := range res.Warnings {
		warning.Fprintln(c.out, w)
	}
	switch {
	case res.Updated:
		c.success("%s updated.", kind)
	case res.NoChanges:
		c.p.Notify("No changes were entered.")
	}
}

func (c *Console) registerPet() error {
	Title(c.out, "Register Pet")
	name, err := c.p.Ask("Pet name: ")
	if err != nil {
		return err
	}
	species, err := c.p.Ask("Species: ")
	if err != nil {
		return err
	}
	breed, err := c.p.Ask("Breed: ")
	if err != nil {
		return err
	}
	age, err := c.p.AskNonNegativeInt("Age in years: ")
	if err != nil {
		return err
	}

	c.p.Notify("--- Owner information ---")
	ownerName, err := c.p.Ask("Name of the existing or new owner: ")
	if err != nil {
		return err
	}

	pet, err := c.svc.RegisterPet(clinic.PetInput{
		Name:      name,
		Species:   species,
		Breed:     breed,
		Age:       age,
		OwnerName: ownerName,
	})
	if err != nil {
		return err
	}
	c.success("Pet '%s' registered with ID %d, owner: %s.", pet.Name, pet.ID, pet.OwnerLabel())
	return nil
}

func (c *Console) registerVisit() error {
	Title(c.out, "Register Visit")
	id, err := c.p.AskID("Pet ID for the visit: ", "pet")
	if err != nil {
		return err
	}
	pet, err := c.svc.Pet(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Registering visit for: %s (ID: %d)\n", pet.Name, pet.ID)
	date, err := c.p.AskDate("Visit date (DD-MM-YYYY): ")
	if err != nil {
		return err
	}
	reason, err := c.p.Ask("Reason: ")
	if err != nil {
		return err
	}
	diagnosis, err := c.p.Ask("Diagnosis: ")
	if err != nil {
		return err
	}

	v, err := c.svc.RegisterVisit(clinic.VisitInput{PetID: pet.ID, Date: date, Reason: reason, Diagnosis: diagnosis})
	if err != nil {
		return err
	}
	c.success("Visit %d registered.", v.ID)
	return nil
}

func (c *Console) listOwners() error {
	Title(c.out, "Owners")
	owners, err := c.svc.Owners()
	if err != nil {
		return err
	}
	if len(owners) == 0 {
		c.p.Notify("No owners registered.")
		return nil
	}
	Owners(c.out, owners)
	return nil
}

func (c *Console) listPets() error {
	Title(c.out, "Registered Pets")
	pets, err := c.svc.Pets()
	if err != nil {
		return err
	}
	if len(pets) == 0 {
		c.p.Notify("No pets registered.")
		return nil
	}
	Pets(c.out, pets)
	return nil
}

func (c *Console) history() error {
	Title(c.out, "Clinical History")
	id, err := c.p.AskID("Pet ID to view history: ", "pet")
	if err != nil {
		return err
	}
	pet, visits, err := c.svc.History(id)
	if err != nil {
		return err
	}
	if len(visits) == 0 {
		c.p.Notify(fmt.Sprintf("No visits recorded for %s (ID: %d).", pet.Name, pet.ID))
		return nil
	}
	History(c.out, pet, visits)
	return nil
}

func (c *Console) updateOwner() error {
	Title(c.out, "Update Owner")
	id, err := c.p.AskID("Owner ID to update: ", "owner")
	if err != nil {
		return err
	}
	o, err := c.svc.Owner(id)
	if err != nil {
		return err
	}

	c.p.Notify("Current owner:")
	Owner(c.out, o)
	fmt.Fprintln(c.out, "\nEnter new values (leave blank to keep the current one):")

	var edits clinic.OwnerEdits
	if edits.Name, err = c.p.Ask(fmt.Sprintf("New name (%s): ", o.Name)); err != nil {
		return err
	}
	if edits.Phone, err = c.p.Ask(fmt.Sprintf("New phone (%s): ", o.Phone)); err != nil {
		return err
	}
	if edits.Address, err = c.p.Ask(fmt.Sprintf("New address (%s): ", o.Address)); err != nil {
		return err
	}

	res, err := c.svc.UpdateOwner(id, edits)
	if err != nil {
		return err
	}
	c.report(res, "Owner")
	return nil
}

func (c *Console) updatePet() error {
	Title(c.out, "Update Pet")
	id, err := c.p.AskID("Pet ID to update: ", "pet")
	if err != nil {
		return err
	}
	pet, err := c.svc.Pet(id)
	if err != nil {
		return err
	}

	c.p.Notify("Current pet:")
	Pet(c.out, pet)
	fmt.Fprintln(c.out, "\nEnter new values (leave blank to keep the current one):")

	var edits clinic.PetEdits
	if edits.Name, err = c.p.Ask(fmt.Sprintf("New name (%s): ", pet.Name)); err != nil {
		return err
	}
	if edits.Species, err = c.p.Ask(fmt.Sprintf("New species (%s): ", pet.Species)); err != nil {
		return err
	}
	if edits.Breed, err = c.p.Ask(fmt.Sprintf("New breed (%s): ", pet.Breed)); err != nil {
		return err
	}
	if edits.Age, err = c.p.Ask(fmt.Sprintf("New age in years (%d): ", pet.Age)); err != nil {
		return err
	}

	change, err := c.p.Confirm("Change this pet's owner?")
	if err != nil {
		return err
	}
	if change {
		if edits.NewOwnerName, err = c.p.Ask("New owner's name: "); err != nil {
			return err
		}
	}

	res, err := c.svc.UpdatePet(id, edits)
	if err != nil {
		return err
	}
	c.report(res, "Pet")
	return nil
}

func (c *Console) updateVisit() error {
	Title(c.out, "Update Visit")
	id, err := c.p.AskID("Visit ID to update: ", "visit")
	if err != nil {
		return err
	}
	v, err := c.svc.Visit(id)
	if err != nil {
		return err
	}

	c.p.Notify(fmt.Sprintf("Current visit (pet: %s):", v.PetLabel()))
	Visit(c.out, v)
	fmt.Fprintln(c.out, "\nEnter new values (leave blank to keep the current one):")

	var edits clinic.VisitEdits
	if edits.Date, err = c.p.Ask(fmt.Sprintf("New date (DD-MM-YYYY) (%s): ", models.FormatDisplayDate(v.Date))); err != nil {
		return err
	}
	if edits.Reason, err = c.p.Ask(fmt.Sprintf("New reason (%s): ", v.Reason)); err != nil {
		return err
	}
	if edits.Diagnosis, err = c.p.Ask(fmt.Sprintf("New diagnosis (%s): ", v.Diagnosis)); err != nil {
		return err
	}

	res, err := c.svc.UpdateVisit(id, edits)
	if err != nil {
		return err
	}
	c.report(res, "Visit")
	return nil
}

func (c *Console) deleteOwner() error {
	Title(c.out, "Delete Owner")
	id, err := c.p.AskID("Owner ID to delete: ", "owner")
	if err != nil {
		return err
	}
	o, err := c.svc.DeleteOwner(id)
	if err != nil {
		return err
	}
	c.success("Owner '%s' and associated records deleted.", o.Name)
	return nil
}

func (c *Console) deletePet() error {
	Title(c.out, "Delete Pet")
	id, err := c.p.AskID("Pet ID to delete: ", "pet")
	if err != nil {
		return err
	}
	p, err := c.svc.DeletePet(id)
	if err != nil {
		return err
	}
	c.success("Pet '%s' and its visits deleted.", p.Name)
	return nil
}

func (c *Console) deleteVisit() error {
	Title(c.out, "Delete Visit")
	id, err := c.p.AskID("Visit ID to delete: ", "visit")
	if err != nil {
		return err
	}
	v, err := c.svc.DeleteVisit(id)
	if err != nil {
		return err
	}
	c.success("Visit %d deleted.", v.ID)
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
