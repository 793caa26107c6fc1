package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/petlife/internal/ids"
	"github.com/rcliao/petlife/internal/model"
)

func init() {
	petCmd := &cobra.Command{
		Use:   "pet",
		Short: "Manage pet profiles",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a pet",
		Run:   runPetAdd,
	}
	addPetFlags(addCmd)
	addCmd.Flags().String("id", "", "Pet ID (default: generated)")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("birth-date")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Update a pet; only the given flags change",
		Args:  cobra.ExactArgs(1),
		Run:   runPetEdit,
	}
	addPetFlags(editCmd)

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a pet",
		Args:  cobra.ExactArgs(1),
		Run:   runPetGet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pets, newest first",
		Run:   runPetList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a pet and all of its records",
		Args:  cobra.ExactArgs(1),
		Run:   runPetRm,
	}

	petCmd.AddCommand(addCmd, editCmd, getCmd, listCmd, rmCmd)
	RootCmd.AddCommand(petCmd)
}

func addPetFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Pet name")
	cmd.Flags().String("species", "dog", "Species: dog, cat, bird, other")
	cmd.Flags().String("breed", "", "Breed (default: "+model.DefaultBreed+")")
	cmd.Flags().String("birth-date", "", "Birth date (YYYY-MM-DD, approximate is fine)")
	cmd.Flags().String("photo", "", "Path to a photo file")
}

// applyPetFlags copies flags onto p. With onlyChanged, untouched flags keep p's values.
func applyPetFlags(cmd *cobra.Command, p *model.Pet, onlyChanged bool) error {
	set := func(name string) bool { return !onlyChanged || cmd.Flags().Changed(name) }

	if set("name") {
		p.Name, _ = cmd.Flags().GetString("name")
	}
	if set("species") {
		raw, _ := cmd.Flags().GetString("species")
		sp, ok := model.ParseSpecies(raw)
		if !ok {
			return fmt.Errorf("unknown species %q (valid: dog, cat, bird, other)", raw)
		}
		p.Species = sp
	}
	if set("breed") {
		p.Breed, _ = cmd.Flags().GetString("breed")
	}
	if strings.TrimSpace(p.Breed) == "" {
		p.Breed = model.DefaultBreed
	}
	if set("birth-date") {
		bd, _ := cmd.Flags().GetString("birth-date")
		if _, err := time.Parse("2006-01-02", bd); err != nil {
			return fmt.Errorf("invalid birth date %q: want YYYY-MM-DD", bd)
		}
		p.BirthDate = bd
	}
	if photo, _ := cmd.Flags().GetString("photo"); photo != "" {
		data, _, err := readDataURL(photo)
		if err != nil {
			return fmt.Errorf("read photo: %w", err)
		}
		p.PhotoData = data
	}
	return nil
}

func runPetAdd(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		id = ids.New()
	}
	pet := model.Pet{ID: id, CreatedAt: time.Now().UnixMilli()}
	if err := applyPetFlags(cmd, &pet, false); err != nil {
		exitErr("pet add", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.tracker.SavePet(cmd.Context(), pet); err != nil {
		exitErr("pet add", err)
	}
	output(cmd, pet)
}

func runPetEdit(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	pet, err := s.tracker.GetPetByID(cmd.Context(), args[0])
	if err != nil {
		exitErr("pet edit", err)
	}
	if pet == nil {
		exitErr("pet edit", fmt.Errorf("pet not found: %s", args[0]))
	}
	if err := applyPetFlags(cmd, pet, true); err != nil {
		exitErr("pet edit", err)
	}
	if err := s.tracker.SavePet(cmd.Context(), *pet); err != nil {
		exitErr("pet edit", err)
	}
	output(cmd, pet)
}

func runPetGet(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	pet, err := s.tracker.GetPetByID(cmd.Context(), args[0])
	if err != nil {
		exitErr("pet get", err)
	}
	if pet == nil {
		exitErr("pet get", fmt.Errorf("pet not found: %s", args[0]))
	}
	output(cmd, pet)
}

func runPetList(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	pets, err := s.tracker.GetPets(cmd.Context())
	if err != nil {
		exitErr("pet list", err)
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].CreatedAt > pets[j].CreatedAt })
	output(cmd, pets)
}

func runPetRm(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.tracker.DeletePet(cmd.Context(), args[0]); err != nil {
		exitErr("pet rm", err)
	}
	output(cmd, map[string]interface{}{"ok": true, "id": args[0]})
}
