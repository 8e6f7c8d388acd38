package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// DefaultPageSize matches the number of rows shown per screen by list commands.
const DefaultPageSize = 5

type pageFlags struct {
	page int
	size int
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "Page to show, starting at 1")
	cmd.Flags().IntVar(&p.size, "page-size", DefaultPageSize, "Rows per page (0 shows everything)")
}

// bounds returns the slice window of page p over n rows and the page count.
func (p pageFlags) bounds(n int) (start, end, pages int) {
	if p.size <= 0 || n == 0 {
		return 0, n, 1
	}
	pages = (n + p.size - 1) / p.size
	page := p.page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start = (page - 1) * p.size
	return start, min(start+p.size, n), pages
}

func printPage[T any](out io.Writer, items []T, p pageFlags, empty, header string, row func(T) []interface{}) error {
	if len(items) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}

	start, end, pages := p.bounds(len(items))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, item := range items[start:end] {
		cols := row(item)
		for i, c := range cols {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if pages > 1 {
		fmt.Fprintf(out, "Page %d of %d (%d rows)\n", start/p.size+1, pages, len(items))
	}
	return nil
}

func printFields(out io.Writer, title string, fields [][2]string) error {
	fmt.Fprintln(out, title)
	tw := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "  %s:\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}

func parsePrice(s, what string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return d, nil
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func parseLink(args []string) (enterpriseID, productID int64, price decimal.Decimal, err error) {
	if enterpriseID, err = parseID(args[0], "enterprise"); err != nil {
		return
	}
	if productID, err = parseID(args[1], "product"); err != nil {
		return
	}
	price, err = parsePrice(args[2], "wholesale price")
	return
}
