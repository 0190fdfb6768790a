package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/2azusa/Go-Blog/internal/domain/listing"
	"github.com/2azusa/Go-Blog/internal/infrastructure/blogapi"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse and manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with pagination and optional username filter",
	RunE:  runUsersList,
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user account",
	RunE:  runUsersAdd,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Edit a user's username, email, or role",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

var (
	userPage     int
	userPageSize int
	userQuery    string
	userYes      bool

	userForm struct {
		username string
		password string
		email    string
		role     int
	}
)

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersListCmd.Flags().IntVar(&userPage, "page", 1, "Page number")
	usersListCmd.Flags().IntVar(&userPageSize, "page-size", 10, "Items per page")
	usersListCmd.Flags().StringVar(&userQuery, "query", "", "Filter by username")

	for _, cmd := range []*cobra.Command{usersAddCmd, usersUpdateCmd} {
		cmd.Flags().StringVarP(&userForm.username, "username", "u", "", "Username")
		cmd.Flags().StringVarP(&userForm.email, "email", "e", "", "Email address")
		cmd.Flags().IntVar(&userForm.role, "role", 2, "Role (1 admin, 2 regular)")
	}
	usersAddCmd.Flags().StringVarP(&userForm.password, "password", "p", "", "Password")

	usersDeleteCmd.Flags().BoolVar(&userYes, "yes", false, "Skip the confirmation prompt")
}

func runUsersList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctl := listing.NewController(
		a.api.Users(),
		func(user blogapi.User) uint { return user.ID },
		listing.WithPageSize[blogapi.User, blogapi.UserForm](userPageSize),
		listing.WithFilter[blogapi.User, blogapi.UserForm](userQuery),
		listing.WithLogger[blogapi.User, blogapi.UserForm](a.log),
	)
	if err := ctl.ChangePage(cmd.Context(), userPage, 0); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED")
	for _, user := range ctl.Items() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Email, roleName(user.Role), user.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()

	fmt.Printf("page %d of %d items (page size %d)\n", ctl.Page(), ctl.Total(), ctl.PageSize())
	return nil
}

func runUsersAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	form := blogapi.ReqAddUser{
		Username: userForm.username,
		Password: userForm.password,
		Email:    userForm.email,
		Role:     userForm.role,
	}
	if err := listing.ValidateForm(form); err != nil {
		return err
	}

	user, err := a.api.AddUser(cmd.Context(), form)
	if err != nil {
		return err
	}
	fmt.Printf("Added user %d: %s\n", user.ID, user.Username)
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	current, err := a.api.GetUser(cmd.Context(), id)
	if err != nil {
		return err
	}

	form := blogapi.ReqEditUser{
		Username: current.Username,
		Email:    current.Email,
		Role:     current.Role,
	}
	if cmd.Flags().Changed("username") {
		form.Username = userForm.username
	}
	if cmd.Flags().Changed("email") {
		form.Email = userForm.email
	}
	if cmd.Flags().Changed("role") {
		form.Role = userForm.role
	}

	if err := listing.ValidateForm(form); err != nil {
		return err
	}

	user, err := a.api.UpdateUser(cmd.Context(), id, form)
	if err != nil {
		return err
	}
	fmt.Printf("Updated user %d: %s\n", user.ID, user.Username)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !promptConfirmer(userYes).Confirm(fmt.Sprintf("delete user %d?", id)) {
		fmt.Println("Cancelled")
		return nil
	}
	if err := a.api.DeleteUser(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted user %d\n", id)
	return nil
}

func roleName(role int) string {
	switch role {
	case 1:
		return "admin"
	case 2:
		return "user"
	default:
		return fmt.Sprintf("role-%d", role)
	}
}
