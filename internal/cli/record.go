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
	recordCmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"rec"},
		Short:   "Manage medical records",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a medical record",
		Long:  "Add a medical record. For weight records, pass the weight in kg as --description.",
		Run:   runRecordAdd,
	}
	addRecordFlags(addCmd)
	addCmd.Flags().String("id", "", "Record ID (default: generated)")
	addCmd.MarkFlagRequired("pet")
	addCmd.MarkFlagRequired("type")
	addCmd.MarkFlagRequired("title")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Update a record; only the given flags change",
		Args:  cobra.ExactArgs(1),
		Run:   runRecordEdit,
	}
	addRecordFlags(editCmd)

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a record",
		Args:  cobra.ExactArgs(1),
		Run:   runRecordGet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List records, most recent event first",
		Run:   runRecordList,
	}
	listCmd.Flags().StringP("pet", "p", "", "Only records of this pet")

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		Run:   runRecordRm,
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search record titles and descriptions",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRecordSearch,
	}
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	recordCmd.AddCommand(addCmd, editCmd, getCmd, listCmd, rmCmd, searchCmd)
	RootCmd.AddCommand(recordCmd)
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("pet", "p", "", "Pet ID")
	cmd.Flags().StringP("type", "t", "", "Type: vaccine, consultation, exam, surgery, medication, note, weight")
	cmd.Flags().String("date", "", "Event date (YYYY-MM-DD, default: today)")
	cmd.Flags().String("title", "", "Title")
	cmd.Flags().String("description", "", "Description (kg for weight records)")
	cmd.Flags().String("doctor", "", "Veterinarian name")
	cmd.Flags().String("next-due", "", "Next due date (YYYY-MM-DD)")
	cmd.Flags().String("attach", "", "Path to an attachment file")
}

func applyRecordFlags(cmd *cobra.Command, r *model.MedicalRecord, onlyChanged bool) error {
	set := func(name string) bool { return !onlyChanged || cmd.Flags().Changed(name) }
	str := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return strings.TrimSpace(v)
	}

	if set("pet") {
		r.PetID = str("pet")
	}
	if set("type") {
		rt, ok := model.ParseRecordType(str("type"))
		if !ok {
			return fmt.Errorf("unknown record type %q", str("type"))
		}
		r.Type = rt
	}
	if set("date") {
		r.Date = str("date")
	}
	if r.Date == "" {
		r.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", r.Date)
	}
	if set("title") {
		r.Title = str("title")
	}
	if set("description") {
		r.Description = str("description")
	}
	if set("doctor") {
		r.DoctorName = str("doctor")
	}
	if set("next-due") {
		r.NextDueDate = str("next-due")
		if r.NextDueDate != "" {
			if _, err := time.Parse("2006-01-02", r.NextDueDate); err != nil {
				return fmt.Errorf("invalid next due date %q: want YYYY-MM-DD", r.NextDueDate)
			}
		}
	}
	if path := str("attach"); path != "" {
		data, mime, err := readDataURL(path)
		if err != nil {
			return fmt.Errorf("read attachment: %w", err)
		}
		r.AttachmentData = data
		r.AttachmentType = mime
	}
	return nil
}

func runRecordAdd(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		id = ids.New()
	}
	rec := model.MedicalRecord{ID: id, CreatedAt: time.Now().UnixMilli()}
	if err := applyRecordFlags(cmd, &rec, false); err != nil {
		exitErr("record add", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	pet, err := s.tracker.GetPetByID(cmd.Context(), rec.PetID)
	if err != nil {
		exitErr("record add", err)
	}
	if pet == nil {
		exitErr("record add", fmt.Errorf("pet not found: %s", rec.PetID))
	}

	if err := s.tracker.SaveRecord(cmd.Context(), rec); err != nil {
		exitErr("record add", err)
	}
	output(cmd, rec)
}

func runRecordEdit(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.tracker.GetRecordByID(cmd.Context(), args[0])
	if err != nil {
		exitErr("record edit", err)
	}
	if rec == nil {
		exitErr("record edit", fmt.Errorf("record not found: %s", args[0]))
	}
	if err := applyRecordFlags(cmd, rec, true); err != nil {
		exitErr("record edit", err)
	}
	if err := s.tracker.SaveRecord(cmd.Context(), *rec); err != nil {
		exitErr("record edit", err)
	}
	output(cmd, rec)
}

func runRecordGet(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.tracker.GetRecordByID(cmd.Context(), args[0])
	if err != nil {
		exitErr("record get", err)
	}
	if rec == nil {
		exitErr("record get", fmt.Errorf("record not found: %s", args[0]))
	}
	output(cmd, rec)
}

func runRecordList(cmd *cobra.Command, args []string) {
	petID, _ := cmd.Flags().GetString("pet")

	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var records []model.MedicalRecord
	if petID != "" {
		records, err = s.tracker.GetRecordsByPet(cmd.Context(), petID)
	} else {
		records, err = s.tracker.GetAllRecords(cmd.Context())
	}
	if err != nil {
		exitErr("record list", err)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CreatedAt > records[j].CreatedAt
	})
	output(cmd, records)
}

func runRecordRm(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.tracker.DeleteRecord(cmd.Context(), args[0]); err != nil {
		exitErr("record rm", err)
	}
	output(cmd, map[string]interface{}{"ok": true, "id": args[0]})
}

func runRecordSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.tracker.SearchRecords(cmd.Context(), query, limit)
	if err != nil {
		exitErr("search", err)
	}
	output(cmd, records)
}
