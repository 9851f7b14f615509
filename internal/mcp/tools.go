// ABOUTME: MCP tool implementations for clinic records.
// ABOUTME: Provides listing, registration, and update tools; deletes stay interactive.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/vetclinic/internal/clinic"
	"github.com/harperreed/vetclinic/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_owners",
		Description: "List all registered owners",
	}, s.handleListOwners)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_pets",
		Description: "List pets, optionally only those of one owner",
	}, s.handleListPets)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_pet",
		Description: "Get a pet with its clinical history (most recent visit first)",
	}, s.handleGetPet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "register_owner",
		Description: "Register an owner, or return the existing owner with that name",
	}, s.handleRegisterOwner)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "register_pet",
		Description: "Register a pet for an existing owner",
	}, s.handleRegisterPet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "register_visit",
		Description: "Record a clinical visit for a pet",
	}, s.handleRegisterVisit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_owner",
		Description: "Change an owner's name, phone or address; blank fields are left unchanged",
	}, s.handleUpdateOwner)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_pet",
		Description: "Change a pet's details or move it to another owner; blank fields are left unchanged",
	}, s.handleUpdatePet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_visit",
		Description: "Change a visit's date, reason or diagnosis; blank fields are left unchanged",
	}, s.handleUpdateVisit)
}

// Tool input/output types

type listOwnersInput struct{}

type listPetsInput struct {
	OwnerID int64 `json:"owner_id,omitempty" jsonschema:"Only list pets of this owner"`
}

type petIDInput struct {
	PetID int64 `json:"pet_id" jsonschema:"Pet ID"`
}

type registerOwnerInput struct {
	Name    string `json:"name" jsonschema:"Owner name (unique)"`
	Phone   string `json:"phone,omitempty" jsonschema:"Phone number"`
	Address string `json:"address,omitempty" jsonschema:"Postal address"`
}

type ownerOutput struct {
	Owner   *models.Owner `json:"owner"`
	Created bool          `json:"created"`
	Message string        `json:"message"`
}

type registerPetInput struct {
	Name      string `json:"name" jsonschema:"Pet name"`
	Species   string `json:"species,omitempty" jsonschema:"Species, e.g. dog or cat"`
	Breed     string `json:"breed,omitempty" jsonschema:"Breed"`
	Age       int    `json:"age" jsonschema:"Age in whole years, zero or more"`
	OwnerName string `json:"owner_name" jsonschema:"Name of an already registered owner"`
}

type petOutput struct {
	Pet     *models.Pet `json:"pet"`
	Message string      `json:"message"`
}

type registerVisitInput struct {
	PetID     int64  `json:"pet_id" jsonschema:"Pet ID"`
	Date      string `json:"date,omitempty" jsonschema:"Visit date as DD-MM-YYYY or YYYY-MM-DD, defaults to today"`
	Reason    string `json:"reason,omitempty" jsonschema:"Reason for the visit"`
	Diagnosis string `json:"diagnosis,omitempty" jsonschema:"Diagnosis"`
}

type visitOutput struct {
	ID        int64  `json:"id"`
	PetID     int64  `json:"pet_id"`
	PetName   string `json:"pet_name"`
	Date      string `json:"date"`
	Reason    string `json:"reason,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Message   string `json:"message"`
}

type updateOwnerInput struct {
	OwnerID int64  `json:"owner_id" jsonschema:"Owner ID"`
	Name    string `json:"name,omitempty" jsonschema:"New name"`
	Phone   string `json:"phone,omitempty" jsonschema:"New phone"`
	Address string `json:"address,omitempty" jsonschema:"New address"`
}

type updatePetInput struct {
	PetID     int64  `json:"pet_id" jsonschema:"Pet ID"`
	Name      string `json:"name,omitempty" jsonschema:"New name"`
	Species   string `json:"species,omitempty" jsonschema:"New species"`
	Breed     string `json:"breed,omitempty" jsonschema:"New breed"`
	Age       *int   `json:"age,omitempty" jsonschema:"New age in years"`
	OwnerName string `json:"owner_name,omitempty" jsonschema:"Name of the new owner"`
}

type updateVisitInput struct {
	VisitID   int64  `json:"visit_id" jsonschema:"Visit ID"`
	Date      string `json:"date,omitempty" jsonschema:"New date as DD-MM-YYYY"`
	Reason    string `json:"reason,omitempty" jsonschema:"New reason"`
	Diagnosis string `json:"diagnosis,omitempty" jsonschema:"New diagnosis"`
}

type updateOutput struct {
	Updated  bool     `json:"updated"`
	Warnings []string `json:"warnings,omitempty"`
	Message  string   `json:"message"`
}

// Tool handlers

func (s *Server) handleListOwners(ctx context.Context, req *mcp.CallToolRequest, input listOwnersInput) (*mcp.CallToolResult, any, error) {
	owners, err := s.repo.ListOwners()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list owners: %w", err)
	}
	if len(owners) == 0 {
		return nil, map[string]interface{}{"message": "No owners registered."}, nil
	}
	return nil, map[string]interface{}{"owners": owners}, nil
}

func (s *Server) handleListPets(ctx context.Context, req *mcp.CallToolRequest, input listPetsInput) (*mcp.CallToolResult, any, error) {
	var pets []*models.Pet
	var err error
	if input.OwnerID != 0 {
		pets, err = s.repo.ListPetsByOwner(input.OwnerID)
	} else {
		pets, err = s.repo.ListPets()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pets: %w", err)
	}
	if len(pets) == 0 {
		return nil, map[string]interface{}{"message": "No pets found."}, nil
	}
	return nil, map[string]interface{}{"pets": pets}, nil
}

func (s *Server) handleGetPet(ctx context.Context, req *mcp.CallToolRequest, input petIDInput) (*mcp.CallToolResult, any, error) {
	pet, visits, err := s.service(&presetPrompter{}).History(input.PetID)
	if err != nil {
		return nil, nil, err
	}

	history := make([]visitOutput, 0, len(visits))
	for _, v := range visits {
		history = append(history, toVisitOutput(v))
	}
	return nil, map[string]interface{}{
		"pet":    pet,
		"visits": history,
	}, nil
}

func (s *Server) handleRegisterOwner(ctx context.Context, req *mcp.CallToolRequest, input registerOwnerInput) (*mcp.CallToolResult, ownerOutput, error) {
	// The service asks for the final name (blank keeps the searched one), then phone and address.
	p := &presetPrompter{confirm: true, answers: []string{"", input.Phone, input.Address}}
	o, err := s.service(p).FindOrCreateOwner(input.Name)
	if err != nil {
		return nil, ownerOutput{}, err
	}

	out := ownerOutput{Owner: o, Created: p.confirmed}
	if out.Created {
		out.Message = fmt.Sprintf("Registered owner %s (ID: %d)", o.Name, o.ID)
	} else {
		out.Message = fmt.Sprintf("Owner %s already exists (ID: %d)", o.Name, o.ID)
	}
	return nil, out, nil
}

func (s *Server) handleRegisterPet(ctx context.Context, req *mcp.CallToolRequest, input registerPetInput) (*mcp.CallToolResult, petOutput, error) {
	pet, err := s.service(&presetPrompter{}).RegisterPet(clinic.PetInput{
		Name:      input.Name,
		Species:   input.Species,
		Breed:     input.Breed,
		Age:       input.Age,
		OwnerName: input.OwnerName,
	})
	if errors.Is(err, clinic.ErrCancelled) {
		return nil, petOutput{}, fmt.Errorf("owner %q is not registered; call register_owner first", input.OwnerName)
	}
	if err != nil {
		return nil, petOutput{}, err
	}

	return nil, petOutput{
		Pet:     pet,
		Message: fmt.Sprintf("Registered %s (ID: %d) for %s", pet.Name, pet.ID, pet.OwnerLabel()),
	}, nil
}

func (s *Server) handleRegisterVisit(ctx context.Context, req *mcp.CallToolRequest, input registerVisitInput) (*mcp.CallToolResult, visitOutput, error) {
	date := time.Now()
	if input.Date != "" {
		d, err := parseToolDate(input.Date)
		if err != nil {
			return nil, visitOutput{}, err
		}
		date = d
	}

	v, err := s.service(&presetPrompter{}).RegisterVisit(clinic.VisitInput{
		PetID:     input.PetID,
		Date:      date,
		Reason:    input.Reason,
		Diagnosis: input.Diagnosis,
	})
	if err != nil {
		return nil, visitOutput{}, err
	}

	out := toVisitOutput(v)
	out.Message = fmt.Sprintf("Recorded visit %d for %s on %s", v.ID, v.PetLabel(), models.FormatDisplayDate(v.Date))
	return nil, out, nil
}

// toVisitOutput flattens a visit with its date in stored YYYY-MM-DD form.
func toVisitOutput(v *models.Visit) visitOutput {
	return visitOutput{
		ID:        v.ID,
		PetID:     v.PetID,
		PetName:   v.PetName,
		Date:      v.Date.Format(models.DateLayout),
		Reason:    v.Reason,
		Diagnosis: v.Diagnosis,
	}
}

func (s *Server) handleUpdateOwner(ctx context.Context, req *mcp.CallToolRequest, input updateOwnerInput) (*mcp.CallToolResult, updateOutput, error) {
	res, err := s.service(&presetPrompter{}).UpdateOwner(input.OwnerID, clinic.OwnerEdits{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	})
	if err != nil {
		return nil, updateOutput{}, err
	}
	return nil, toUpdateOutput(res, "owner", input.OwnerID), nil
}

func (s *Server) handleUpdatePet(ctx context.Context, req *mcp.CallToolRequest, input updatePetInput) (*mcp.CallToolResult, updateOutput, error) {
	edits := clinic.PetEdits{
		Name:         input.Name,
		Species:      input.Species,
		Breed:        input.Breed,
		NewOwnerName: input.OwnerName,
	}
	if input.Age != nil {
		edits.Age = strconv.Itoa(*input.Age)
	}

	res, err := s.service(&presetPrompter{}).UpdatePet(input.PetID, edits)
	if err != nil {
		return nil, updateOutput{}, err
	}
	return nil, toUpdateOutput(res, "pet", input.PetID), nil
}

func (s *Server) handleUpdateVisit(ctx context.Context, req *mcp.CallToolRequest, input updateVisitInput) (*mcp.CallToolResult, updateOutput, error) {
	res, err := s.service(&presetPrompter{}).UpdateVisit(input.VisitID, clinic.VisitEdits{
		Date:      input.Date,
		Reason:    input.Reason,
		Diagnosis: input.Diagnosis,
	})
	if err != nil {
		return nil, updateOutput{}, err
	}
	return nil, toUpdateOutput(res, "visit", input.VisitID), nil
}

func toUpdateOutput(res *clinic.UpdateResult, kind string, id int64) updateOutput {
	out := updateOutput{Updated: res.Updated, Warnings: res.Warnings}
	if res.Updated {
		out.Message = fmt.Sprintf("Updated %s %d", kind, id)
	} else {
		out.Message = fmt.Sprintf("No changes for %s %d", kind, id)
	}
	return out
}

// parseToolDate accepts the display form first, then the stored form.
func parseToolDate(s string) (time.Time, error) {
	if d, err := models.ParseDisplayDate(s); err == nil {
		return d, nil
	}
	if d, err := models.ParseStoredDate(s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use DD-MM-YYYY or YYYY-MM-DD)", s)
}
