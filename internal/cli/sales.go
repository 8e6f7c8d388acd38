package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"enterprise-registry/internal/entities"
)

func (a *App) salesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sales",
		Aliases: []string{"sales-department"},
		Short:   "Manage sales departments (one per enterprise)",
	}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List sales departments ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.ds.ListSalesDepartments(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sales departments: %w", err)
			}
			return printPage(a.Out, items, page, "No sales departments found.",
				"ID\tENTERPRISE\tCONTACT\tPHONE\tEMAIL",
				func(d entities.SalesDepartment) []interface{} {
					return []interface{}{d.ID, d.EnterpriseName, contactName(d), d.Phone, d.Email}
				})
		},
	}
	page.register(list)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one sales department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "sales department")
			if err != nil {
				return err
			}
			d, err := a.ds.GetSalesDepartmentByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get sales department: %w", err)
			}
			if d.IsZero() {
				return fmt.Errorf("sales department %d not found", id)
			}
			return printFields(a.Out, "Sales Department Details:", [][2]string{
				{"ID", itoa(d.ID)},
				{"Enterprise", fmt.Sprintf("%s (%d)", d.EnterpriseName, d.EnterpriseID)},
				{"Contact", contactName(d)},
				{"Phone", d.Phone},
				{"Fax", d.Fax},
				{"Email", d.Email},
			})
		},
	}

	var fields entities.SalesDepartment
	create := &cobra.Command{
		Use:   "create",
		Short: "Create the sales department of an enterprise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ds.CreateSalesDepartment(cmd.Context(), fields)
			if err != nil {
				return fmt.Errorf("failed to create sales department: %w", err)
			}
			fmt.Fprintf(a.Out, "Created sales department (ID: %d)\n", id)
			return nil
		},
	}
	salesFlags(create, &fields)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a sales department; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "sales department")
			if err != nil {
				return err
			}
			d, err := a.ds.GetSalesDepartmentByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get sales department: %w", err)
			}
			if d.IsZero() {
				return fmt.Errorf("sales department %d not found", id)
			}

			f := cmd.Flags()
			if f.Changed("enterprise") {
				d.EnterpriseID = fields.EnterpriseID
			}
			if f.Changed("phone") {
				d.Phone = fields.Phone
			}
			if f.Changed("fax") {
				d.Fax = fields.Fax
			}
			if f.Changed("email") {
				d.Email = fields.Email
			}
			if f.Changed("last-name") {
				d.ContactLastName = fields.ContactLastName
			}
			if f.Changed("first-name") {
				d.ContactFirstName = fields.ContactFirstName
			}
			if f.Changed("patronymic") {
				d.ContactPatronymic = fields.ContactPatronymic
			}

			if err := a.ds.UpdateSalesDepartment(cmd.Context(), d); err != nil {
				return fmt.Errorf("failed to update sales department: %w", err)
			}
			fmt.Fprintf(a.Out, "Updated sales department: %d\n", id)
			return nil
		},
	}
	salesFlags(update, &fields)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sales department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "sales department")
			if err != nil {
				return err
			}
			if err := a.ds.DeleteSalesDepartment(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete sales department: %w", err)
			}
			fmt.Fprintf(a.Out, "Deleted sales department: %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func salesFlags(cmd *cobra.Command, d *entities.SalesDepartment) {
	f := cmd.Flags()
	f.Int64Var(&d.EnterpriseID, "enterprise", 0, "Enterprise id")
	f.StringVar(&d.Phone, "phone", "", "Phone")
	f.StringVar(&d.Fax, "fax", "", "Fax")
	f.StringVar(&d.Email, "email", "", "Email")
	f.StringVar(&d.ContactLastName, "last-name", "", "Contact last name")
	f.StringVar(&d.ContactFirstName, "first-name", "", "Contact first name")
	f.StringVar(&d.ContactPatronymic, "patronymic", "", "Contact patronymic")
}

func contactName(d entities.SalesDepartment) string {
	name := d.ContactLastName + " " + d.ContactFirstName
	if d.ContactPatronymic != "" {
		name += " " + d.ContactPatronymic
	}
	return name
}
