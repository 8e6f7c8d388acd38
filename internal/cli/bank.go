package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"enterprise-registry/internal/entities"
)

func (a *App) bankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bank",
		Aliases: []string{"bank-details"},
		Short:   "Manage bank details (one record per enterprise)",
	}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List bank details ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.ds.ListBankDetails(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list bank details: %w", err)
			}
			return printPage(a.Out, items, page, "No bank details found.",
				"ID\tENTERPRISE\tBANK\tCITY\tACCOUNT",
				func(b entities.BankDetails) []interface{} {
					return []interface{}{b.ID, b.EnterpriseName, b.BankName, b.BankCity, b.AccountNumber}
				})
		},
	}
	page.register(list)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one bank record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "bank details")
			if err != nil {
				return err
			}
			b, err := a.ds.GetBankDetailsByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get bank details: %w", err)
			}
			if b.IsZero() {
				return fmt.Errorf("bank details %d not found", id)
			}
			return printFields(a.Out, "Bank Details:", [][2]string{
				{"ID", itoa(b.ID)},
				{"Enterprise", fmt.Sprintf("%s (%d)", b.EnterpriseName, b.EnterpriseID)},
				{"Bank", b.BankName},
				{"City", b.BankCity},
				{"Account", b.AccountNumber},
			})
		},
	}

	var fields entities.BankDetails
	create := &cobra.Command{
		Use:   "create",
		Short: "Create the bank record of an enterprise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ds.CreateBankDetails(cmd.Context(), fields)
			if err != nil {
				return fmt.Errorf("failed to create bank details: %w", err)
			}
			fmt.Fprintf(a.Out, "Created bank details (ID: %d)\n", id)
			return nil
		},
	}
	bankFlags(create, &fields)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a bank record; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "bank details")
			if err != nil {
				return err
			}
			b, err := a.ds.GetBankDetailsByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get bank details: %w", err)
			}
			if b.IsZero() {
				return fmt.Errorf("bank details %d not found", id)
			}

			f := cmd.Flags()
			if f.Changed("enterprise") {
				b.EnterpriseID = fields.EnterpriseID
			}
			if f.Changed("bank") {
				b.BankName = fields.BankName
			}
			if f.Changed("city") {
				b.BankCity = fields.BankCity
			}
			if f.Changed("account") {
				b.AccountNumber = fields.AccountNumber
			}

			if err := a.ds.UpdateBankDetails(cmd.Context(), b); err != nil {
				return fmt.Errorf("failed to update bank details: %w", err)
			}
			fmt.Fprintf(a.Out, "Updated bank details: %d\n", id)
			return nil
		},
	}
	bankFlags(update, &fields)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bank record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "bank details")
			if err != nil {
				return err
			}
			if err := a.ds.DeleteBankDetails(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete bank details: %w", err)
			}
			fmt.Fprintf(a.Out, "Deleted bank details: %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func bankFlags(cmd *cobra.Command, b *entities.BankDetails) {
	f := cmd.Flags()
	f.Int64Var(&b.EnterpriseID, "enterprise", 0, "Enterprise id")
	f.StringVar(&b.BankName, "bank", "", "Bank name")
	f.StringVar(&b.BankCity, "city", "", "Bank city")
	f.StringVar(&b.AccountNumber, "account", "", "Account number")
}
