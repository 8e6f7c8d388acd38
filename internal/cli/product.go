package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"enterprise-registry/internal/entities"
)

type productInput struct {
	product       entities.Product
	retailPrice   string
	purchasePrice string
}

func (in *productInput) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&in.product.Name, "name", "", "Product name, unique")
	f.Int64Var(&in.product.CategoryID, "category", 0, "Product category id (see: dictionary list product-category)")
	f.IntVar(&in.product.ShelfLifeDays, "shelf-life", 0, "Shelf life in days")
	f.Int64Var(&in.product.DeliveryTermsID, "delivery-terms", 0, "Delivery terms id (see: dictionary list delivery-terms)")
	f.StringVar(&in.retailPrice, "retail-price", "0", "Retail price")
	f.StringVar(&in.purchasePrice, "purchase-price", "0", "Purchase price")
}

// apply copies the flags that were set onto p.
func (in *productInput) apply(cmd *cobra.Command, p *entities.Product) error {
	f := cmd.Flags()
	if f.Changed("name") {
		p.Name = in.product.Name
	}
	if f.Changed("category") {
		p.CategoryID = in.product.CategoryID
	}
	if f.Changed("shelf-life") {
		p.ShelfLifeDays = in.product.ShelfLifeDays
	}
	if f.Changed("delivery-terms") {
		p.DeliveryTermsID = in.product.DeliveryTermsID
	}
	if f.Changed("retail-price") {
		d, err := parsePrice(in.retailPrice, "retail price")
		if err != nil {
			return err
		}
		p.RetailPrice = d
	}
	if f.Changed("purchase-price") {
		d, err := parsePrice(in.purchasePrice, "purchase price")
		if err != nil {
			return err
		}
		p.PurchasePrice = d
	}
	return nil
}

func (a *App) productCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage the product catalog",
	}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List products ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.ds.ListProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}
			return printPage(a.Out, items, page, "No products found.",
				"ID\tNAME\tCATEGORY\tSHELF LIFE\tDELIVERY\tRETAIL\tPURCHASE",
				func(p entities.Product) []interface{} {
					return []interface{}{p.ID, p.Name, p.CategoryName, p.ShelfLifeDays,
						p.DeliveryTermsDescription, money(p.RetailPrice), money(p.PurchasePrice)}
				})
		},
	}
	page.register(list)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			p, err := a.ds.GetProductByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get product: %w", err)
			}
			if p.IsZero() {
				return fmt.Errorf("product %d not found", id)
			}
			return printFields(a.Out, "Product Details:", [][2]string{
				{"ID", itoa(p.ID)},
				{"Name", p.Name},
				{"Category", fmt.Sprintf("%s (%d)", p.CategoryName, p.CategoryID)},
				{"Shelf life (days)", fmt.Sprint(p.ShelfLifeDays)},
				{"Delivery terms", fmt.Sprintf("%s (%d)", p.DeliveryTermsDescription, p.DeliveryTermsID)},
				{"Retail price", money(p.RetailPrice)},
				{"Purchase price", money(p.PurchasePrice)},
			})
		},
	}

	var in productInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p entities.Product
			if err := in.apply(cmd, &p); err != nil {
				return err
			}
			id, err := a.ds.CreateProduct(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}
			fmt.Fprintf(a.Out, "Created product: %s (ID: %d)\n", p.Name, id)
			return nil
		},
	}
	in.register(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a product; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			p, err := a.ds.GetProductByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get product: %w", err)
			}
			if p.IsZero() {
				return fmt.Errorf("product %d not found", id)
			}
			if err := in.apply(cmd, &p); err != nil {
				return err
			}
			if err := a.ds.UpdateProduct(cmd.Context(), p); err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			fmt.Fprintf(a.Out, "Updated product: %d\n", id)
			return nil
		},
	}
	in.register(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product and remove it from every assortment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			if err := a.ds.DeleteProduct(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}
			fmt.Fprintf(a.Out, "Deleted product: %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
