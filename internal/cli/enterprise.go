package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"enterprise-registry/internal/entities"
)

func (a *App) enterpriseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "enterprise",
		Aliases: []string{"enterprises"},
		Short:   "Manage enterprises",
	}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List enterprises ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.ds.ListEnterprises(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list enterprises: %w", err)
			}
			return printPage(a.Out, items, page, "No enterprises found.",
				"ID\tNAME\tLEGAL FORM\tOWNERSHIP\tINN\tADDRESS",
				func(e entities.Enterprise) []interface{} {
					return []interface{}{e.ID, e.Name, e.LegalFormName, e.OwnershipFormName, e.INN, e.PostalAddress}
				})
		},
	}
	page.register(list)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one enterprise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "enterprise")
			if err != nil {
				return err
			}
			ent, err := a.ds.GetEnterpriseByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get enterprise: %w", err)
			}
			if ent.IsZero() {
				return fmt.Errorf("enterprise %d not found", id)
			}
			return printEnterprise(a, ent)
		},
	}

	var fields entities.Enterprise
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a new enterprise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ds.CreateEnterprise(cmd.Context(), fields)
			if err != nil {
				return fmt.Errorf("failed to create enterprise: %w", err)
			}
			fmt.Fprintf(a.Out, "Created enterprise: %s (ID: %d)\n", fields.Name, id)
			return nil
		},
	}
	enterpriseFlags(create, &fields)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an enterprise; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "enterprise")
			if err != nil {
				return err
			}
			ent, err := a.ds.GetEnterpriseByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get enterprise: %w", err)
			}
			if ent.IsZero() {
				return fmt.Errorf("enterprise %d not found", id)
			}

			f := cmd.Flags()
			if f.Changed("name") {
				ent.Name = fields.Name
			}
			if f.Changed("legal-form") {
				ent.LegalFormID = fields.LegalFormID
			}
			if f.Changed("ownership-form") {
				ent.OwnershipFormID = fields.OwnershipFormID
			}
			if f.Changed("address") {
				ent.PostalAddress = fields.PostalAddress
			}
			if f.Changed("inn") {
				ent.INN = fields.INN
			}

			if err := a.ds.UpdateEnterprise(cmd.Context(), ent); err != nil {
				return fmt.Errorf("failed to update enterprise: %w", err)
			}
			fmt.Fprintf(a.Out, "Updated enterprise: %d\n", id)
			return nil
		},
	}
	enterpriseFlags(update, &fields)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an enterprise with its sales department, bank details and assortment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "enterprise")
			if err != nil {
				return err
			}
			if err := a.ds.DeleteEnterprise(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete enterprise: %w", err)
			}
			fmt.Fprintf(a.Out, "Deleted enterprise: %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func enterpriseFlags(cmd *cobra.Command, e *entities.Enterprise) {
	cmd.Flags().StringVar(&e.Name, "name", "", "Enterprise name")
	cmd.Flags().Int64Var(&e.LegalFormID, "legal-form", 0, "Legal form id (see: dictionary list legal-form)")
	cmd.Flags().Int64Var(&e.OwnershipFormID, "ownership-form", 0, "Ownership form id (see: dictionary list ownership-form)")
	cmd.Flags().StringVar(&e.PostalAddress, "address", "", "Postal address")
	cmd.Flags().StringVar(&e.INN, "inn", "", "Tax identification number, unique")
}

func printEnterprise(a *App, e entities.Enterprise) error {
	return printFields(a.Out, "Enterprise Details:", [][2]string{
		{"ID", itoa(e.ID)},
		{"Name", e.Name},
		{"Legal form", fmt.Sprintf("%s (%d)", e.LegalFormName, e.LegalFormID)},
		{"Ownership form", fmt.Sprintf("%s (%d)", e.OwnershipFormName, e.OwnershipFormID)},
		{"Postal address", e.PostalAddress},
		{"INN", e.INN},
	})
}
