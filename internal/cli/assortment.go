package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"enterprise-registry/internal/entities"
)

func (a *App) assortmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assortment",
		Short: "Manage which products an enterprise carries and at what wholesale price",
	}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list <enterprise-id>",
		Short: "List the assortment of an enterprise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eid, err := parseID(args[0], "enterprise")
			if err != nil {
				return err
			}
			items, err := a.ds.GetAssortmentForEnterprise(cmd.Context(), eid)
			if err != nil {
				return fmt.Errorf("failed to get assortment: %w", err)
			}
			return printPage(a.Out, items, page, "Assortment is empty.",
				"PRODUCT ID\tNAME\tCATEGORY\tRETAIL\tWHOLESALE",
				func(it entities.AssortmentItem) []interface{} {
					return []interface{}{it.Product.ID, it.Product.Name, it.Product.CategoryName,
						money(it.Product.RetailPrice), money(it.WholesalePrice)}
				})
		},
	}
	page.register(list)

	var wherePage pageFlags
	where := &cobra.Command{
		Use:   "where <product-id>",
		Short: "List the enterprises carrying a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			offers, err := a.ds.GetEnterprisesForProduct(cmd.Context(), pid)
			if err != nil {
				return fmt.Errorf("failed to get enterprises for product: %w", err)
			}
			return printPage(a.Out, offers, wherePage, "No enterprise carries this product.",
				"ENTERPRISE ID\tNAME\tINN\tWHOLESALE",
				func(o entities.ProductOffer) []interface{} {
					return []interface{}{o.Enterprise.ID, o.Enterprise.Name, o.Enterprise.INN, money(o.WholesalePrice)}
				})
		},
	}
	wherePage.register(where)

	add := &cobra.Command{
		Use:   "add <enterprise-id> <product-id> <wholesale-price>",
		Short: "Add a product to an enterprise's assortment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eid, pid, price, err := parseLink(args)
			if err != nil {
				return err
			}
			if err := a.ds.AddProductToAssortment(cmd.Context(), eid, pid, price); err != nil {
				return fmt.Errorf("failed to add product to assortment: %w", err)
			}
			fmt.Fprintf(a.Out, "Added product %d to enterprise %d at %s\n", pid, eid, money(price))
			return nil
		},
	}

	updatePrice := &cobra.Command{
		Use:   "update-price <enterprise-id> <product-id> <wholesale-price>",
		Short: "Change the wholesale price of a product in an assortment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eid, pid, price, err := parseLink(args)
			if err != nil {
				return err
			}
			if err := a.ds.UpdateProductPriceInAssortment(cmd.Context(), eid, pid, price); err != nil {
				return fmt.Errorf("failed to update wholesale price: %w", err)
			}
			fmt.Fprintf(a.Out, "Updated price of product %d at enterprise %d to %s\n", pid, eid, money(price))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <enterprise-id> <product-id>",
		Short: "Remove a product from an enterprise's assortment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eid, err := parseID(args[0], "enterprise")
			if err != nil {
				return err
			}
			pid, err := parseID(args[1], "product")
			if err != nil {
				return err
			}
			if err := a.ds.RemoveProductFromAssortment(cmd.Context(), eid, pid); err != nil {
				return fmt.Errorf("failed to remove product from assortment: %w", err)
			}
			fmt.Fprintf(a.Out, "Removed product %d from enterprise %d\n", pid, eid)
			return nil
		},
	}

	cmd.AddCommand(list, where, add, updatePrice, remove)
	return cmd
}
