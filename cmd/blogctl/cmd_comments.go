package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2azusa/Go-Blog/internal/domain/listing"
	"github.com/2azusa/Go-Blog/internal/infrastructure/blogapi"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "View and manage article comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list [article-id]",
	Short: "List the comments on an article",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsList,
}

var commentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Post a comment on an article",
	RunE:  runCommentsAdd,
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsDelete,
}

var (
	commentArticleID uint
	commentContent   string
	commentYes       bool
)

func init() {
	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
	commentsCmd.AddCommand(commentsDeleteCmd)

	commentsAddCmd.Flags().UintVar(&commentArticleID, "article-id", 0, "Article to comment on")
	commentsAddCmd.Flags().StringVar(&commentContent, "content", "", "Comment text")
	_ = commentsAddCmd.MarkFlagRequired("article-id")
	_ = commentsAddCmd.MarkFlagRequired("content")

	commentsDeleteCmd.Flags().BoolVar(&commentYes, "yes", false, "Skip the confirmation prompt")
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	articleID, err := parseID(args[0])
	if err != nil {
		return err
	}

	comments, err := a.api.ListComments(cmd.Context(), articleID)
	if err != nil {
		return err
	}

	if len(comments) == 0 {
		fmt.Println("No comments")
		return nil
	}
	for _, comment := range comments {
		fmt.Printf("[%d] %s (%s): %s\n", comment.ID, comment.Commentator, comment.CreatedAt.Format("2006-01-02 15:04"), comment.Content)
	}
	return nil
}

func runCommentsAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	req := blogapi.ReqAddComment{
		ArticleID: commentArticleID,
		Content:   commentContent,
	}
	if err := listing.ValidateForm(req); err != nil {
		return err
	}

	if err := a.api.AddComment(cmd.Context(), req); err != nil {
		return err
	}
	fmt.Println("Comment posted")
	return nil
}

func runCommentsDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !promptConfirmer(commentYes).Confirm(fmt.Sprintf("delete comment %d?", id)) {
		fmt.Println("Cancelled")
		return nil
	}
	if err := a.api.DeleteComment(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted comment %d\n", id)
	return nil
}
