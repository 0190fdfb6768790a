package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/2azusa/Go-Blog/internal/domain/listing"
	"github.com/2azusa/Go-Blog/internal/infrastructure/blogapi"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse and manage article categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with pagination",
	RunE:  runCategoriesList,
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a category",
	RunE:  runCategoriesCreate,
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesUpdate,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

var (
	categoryPage     int
	categoryPageSize int
	categoryName     string
	categoryYes      bool
)

func init() {
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)

	categoriesListCmd.Flags().IntVar(&categoryPage, "page", 1, "Page number")
	categoriesListCmd.Flags().IntVar(&categoryPageSize, "page-size", 10, "Items per page")

	categoriesCreateCmd.Flags().StringVar(&categoryName, "name", "", "Category name")
	_ = categoriesCreateCmd.MarkFlagRequired("name")
	categoriesUpdateCmd.Flags().StringVar(&categoryName, "name", "", "New category name")
	_ = categoriesUpdateCmd.MarkFlagRequired("name")

	categoriesDeleteCmd.Flags().BoolVar(&categoryYes, "yes", false, "Skip the confirmation prompt")
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctl := listing.NewController(
		a.api.Categories(),
		func(category blogapi.Category) uint { return category.ID },
		listing.WithPageSize[blogapi.Category, blogapi.ReqCategory](categoryPageSize),
		listing.WithLogger[blogapi.Category, blogapi.ReqCategory](a.log),
	)
	if err := ctl.ChangePage(cmd.Context(), categoryPage, 0); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, category := range ctl.Items() {
		fmt.Fprintf(w, "%d\t%s\n", category.ID, category.Name)
	}
	w.Flush()

	fmt.Printf("page %d of %d items (page size %d)\n", ctl.Page(), ctl.Total(), ctl.PageSize())
	return nil
}

func runCategoriesCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	form := blogapi.ReqCategory{Name: categoryName}
	if err := listing.ValidateForm(form); err != nil {
		return err
	}

	category, err := a.api.CreateCategory(cmd.Context(), form)
	if err != nil {
		return err
	}
	fmt.Printf("Created category %d: %s\n", category.ID, category.Name)
	return nil
}

func runCategoriesUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	form := blogapi.ReqCategory{Name: categoryName}
	if err := listing.ValidateForm(form); err != nil {
		return err
	}

	category, err := a.api.UpdateCategory(cmd.Context(), id, form)
	if err != nil {
		return err
	}
	fmt.Printf("Updated category %d: %s\n", category.ID, category.Name)
	return nil
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !promptConfirmer(categoryYes).Confirm(fmt.Sprintf("delete category %d?", id)) {
		fmt.Println("Cancelled")
		return nil
	}
	if err := a.api.DeleteCategory(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted category %d\n", id)
	return nil
}
