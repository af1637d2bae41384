package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/spf13/cobra"
)

func newProductsCommand(e *env) *cobra.Command {
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "Inspect catalog products",
	}

	var all bool
	var category string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products; inactive ones only with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}

			products, err := listProducts(cmd, repository.NewProductRepository(db.DB()), all, category)
			if err != nil {
				return err
			}
			return writeProducts(cmd.OutOrStdout(), products)
		},
	}
	listCmd.Flags().BoolVar(&all, "all", false, "include inactive products")
	listCmd.Flags().StringVar(&category, "category", "", "only products of this category slug")

	productsCmd.AddCommand(listCmd)
	return productsCmd
}

func listProducts(cmd *cobra.Command, products repository.ProductRepository, all bool, category string) ([]*domain.Product, error) {
	filter := domain.ProductFilter{CategorySlug: category}

	var (
		result []*domain.Product
		err    error
	)
	if all {
		result, err = products.ListAll(cmd.Context(), filter)
	} else {
		result, err = products.ListActive(cmd.Context(), filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return result, nil
}

func writeProducts(out io.Writer, products []*domain.Product) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tCATEGORY\tSIZE\tCOLOR\tPRICE\tACTIVE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.Slug, p.Title, p.CategorySlug, p.Size, p.Color, p.Price, strconv.FormatBool(p.Active))
	}
	return tw.Flush()
}
