package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/2azusa/Go-Blog/internal/domain/listing"
	"github.com/2azusa/Go-Blog/internal/infrastructure/blogapi"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Browse and manage articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles with pagination and optional title filter",
	RunE:  runArticlesList,
}

var articlesGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one article, optionally with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesGet,
}

var articlesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new article",
	RunE:  runArticlesCreate,
}

var articlesUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Edit an existing article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesUpdate,
}

var articlesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesDelete,
}

var (
	articlePage     int
	articlePageSize int
	articleTitle    string
	articleComments bool

	articleForm struct {
		title   string
		cid     uint
		desc    string
		content string
		img     string
	}

	assumeYes bool
)

func init() {
	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesGetCmd)
	articlesCmd.AddCommand(articlesCreateCmd)
	articlesCmd.AddCommand(articlesUpdateCmd)
	articlesCmd.AddCommand(articlesDeleteCmd)

	articlesListCmd.Flags().IntVar(&articlePage, "page", 1, "Page number")
	articlesListCmd.Flags().IntVar(&articlePageSize, "page-size", 10, "Items per page")
	articlesListCmd.Flags().StringVar(&articleTitle, "title", "", "Filter by title")

	articlesGetCmd.Flags().BoolVar(&articleComments, "with-comments", false, "Fetch comments alongside the article")

	for _, cmd := range []*cobra.Command{articlesCreateCmd, articlesUpdateCmd} {
		cmd.Flags().StringVar(&articleForm.title, "title", "", "Article title")
		cmd.Flags().UintVar(&articleForm.cid, "cid", 0, "Category id")
		cmd.Flags().StringVar(&articleForm.desc, "desc", "", "Short description")
		cmd.Flags().StringVar(&articleForm.content, "content", "", "Article body")
		cmd.Flags().StringVar(&articleForm.img, "img", "", "Cover image URL")
	}

	articlesDeleteCmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")
}

func articleController(a *app, pageSize int, filter string) *listing.Controller[blogapi.Article, blogapi.ReqArticle] {
	return listing.NewController(
		a.api.Articles(),
		func(article blogapi.Article) uint { return article.ID },
		listing.WithPageSize[blogapi.Article, blogapi.ReqArticle](pageSize),
		listing.WithFilter[blogapi.Article, blogapi.ReqArticle](filter),
		listing.WithConfirmer[blogapi.Article, blogapi.ReqArticle](promptConfirmer(assumeYes)),
		listing.WithLogger[blogapi.Article, blogapi.ReqArticle](a.log),
	)
}

func runArticlesList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctl := articleController(a, articlePageSize, articleTitle)
	if err := ctl.ChangePage(cmd.Context(), articlePage, 0); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCREATED")
	for _, article := range ctl.Items() {
		category := strconv.FormatUint(uint64(article.Cid), 10)
		if article.Category != nil {
			category = article.Category.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", article.ID, article.Title, category, article.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()

	fmt.Printf("page %d of %d items (page size %d)\n", ctl.Page(), ctl.Total(), ctl.PageSize())
	return nil
}

func runArticlesGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var article *blogapi.Article
	if articleComments {
		article, err = a.api.GetArticleWithComments(cmd.Context(), id)
	} else {
		article, err = a.api.GetArticle(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("# %s (id %d)\n\n%s\n", article.Title, article.ID, article.Content)
	if articleComments {
		fmt.Printf("\n%d comments:\n", len(article.Comments))
		for _, comment := range article.Comments {
			fmt.Printf("  [%d] %s: %s\n", comment.ID, comment.Commentator, comment.Content)
		}
	}
	return nil
}

func runArticlesCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	form := blogapi.ReqArticle{
		Title:   articleForm.title,
		Cid:     articleForm.cid,
		Desc:    articleForm.desc,
		Content: articleForm.content,
		Img:     articleForm.img,
	}
	if err := listing.ValidateForm(form); err != nil {
		return err
	}

	article, err := a.api.CreateArticle(cmd.Context(), form)
	if err != nil {
		return err
	}
	fmt.Printf("Created article %d: %s\n", article.ID, article.Title)
	return nil
}

func runArticlesUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	// Start from the server's copy so unset flags keep their values.
	current, err := a.api.GetArticle(cmd.Context(), id)
	if err != nil {
		return err
	}

	form := blogapi.ReqArticle{
		Title:   current.Title,
		Cid:     current.Cid,
		Desc:    current.Desc,
		Content: current.Content,
		Img:     current.Img,
	}
	if cmd.Flags().Changed("title") {
		form.Title = articleForm.title
	}
	if cmd.Flags().Changed("cid") {
		form.Cid = articleForm.cid
	}
	if cmd.Flags().Changed("desc") {
		form.Desc = articleForm.desc
	}
	if cmd.Flags().Changed("content") {
		form.Content = articleForm.content
	}
	if cmd.Flags().Changed("img") {
		form.Img = articleForm.img
	}

	if err := listing.ValidateForm(form); err != nil {
		return err
	}

	article, err := a.api.UpdateArticle(cmd.Context(), id, form)
	if err != nil {
		return err
	}
	fmt.Printf("Updated article %d: %s\n", article.ID, article.Title)
	return nil
}

func runArticlesDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !promptConfirmer(assumeYes).Confirm(fmt.Sprintf("delete article %d?", id)) {
		fmt.Println("Cancelled")
		return nil
	}
	if err := a.api.DeleteArticle(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted article %d\n", id)
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
