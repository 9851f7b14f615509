// ABOUTME: Read-only CLI listings of owners, pets, and clinical histories.
// ABOUTME: Output uses the same renderers as the interactive menu.
package main

import (
	"fmt"
	"strconv"

	"github.com/harperreed/vetclinic/internal/clinic"
	"github.com/harperreed/vetclinic/internal/console"
	"github.com/harperreed/vetclinic/internal/models"
	"github.com/spf13/cobra"
)

var petsOwner int64

var ownersCmd = &cobra.Command{
	Use:     "owners",
	Aliases: []string{"o"},
	Short:   "List registered owners",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owners, err := db.ListOwners()
		if err != nil {
			return fmt.Errorf("failed to list owners: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(owners) == 0 {
			fmt.Fprintln(out, "No owners registered.")
			return nil
		}
		console.Title(out, "Registered Owners")
		console.Owners(out, owners)
		return nil
	},
}

var petsCmd = &cobra.Command{
	Use:     "pets",
	Aliases: []string{"p"},
	Short:   "List registered pets",
	Long: `List registered pets with their owners.

EXAMPLES:

  vetclinic pets              # All pets
  vetclinic pets --owner 2    # Only the pets of owner 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var pets []*models.Pet
		var err error
		if petsOwner != 0 {
			pets, err = db.ListPetsByOwner(petsOwner)
		} else {
			pets, err = db.ListPets()
		}
		if err != nil {
			return fmt.Errorf("failed to list pets: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(pets) == 0 {
			fmt.Fprintln(out, "No pets found.")
			return nil
		}
		console.Title(out, "Registered Pets")
		console.Pets(out, pets)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:     "history <pet-id>",
	Aliases: []string{"h"},
	Short:   "Show a pet's clinical history",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid pet id: %s", args[0])
		}

		out := cmd.OutOrStdout()
		svc := clinic.NewService(db, console.NewPrompter(cmd.InOrStdin(), out, logs.Logger), logs.Logger)
		pet, visits, err := svc.History(id)
		if err != nil {
			return err
		}

		if len(visits) == 0 {
			fmt.Fprintf(out, "%s (ID: %d) has no recorded visits.\n", pet.Name, pet.ID)
			return nil
		}
		console.History(out, pet, visits)
		return nil
	},
}

func init() {
	petsCmd.Flags().Int64Var(&petsOwner, "owner", 0, "only list pets of this owner id")

	rootCmd.AddCommand(ownersCmd)
	rootCmd.AddCommand(petsCmd)
	rootCmd.AddCommand(historyCmd)
}
