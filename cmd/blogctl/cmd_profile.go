package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/2azusa/Go-Blog/internal/domain/listing"
	"github.com/2azusa/Go-Blog/internal/infrastructure/blogapi"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update the logged-in user's profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE:  runProfileUpdate,
}

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a file and print its public URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var profileForm struct {
	name   string
	desc   string
	wechat string
	weibo  string
	img    string
	avatar string
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().StringVar(&profileForm.name, "name", "", "Display name")
	profileUpdateCmd.Flags().StringVar(&profileForm.desc, "desc", "", "Bio")
	profileUpdateCmd.Flags().StringVar(&profileForm.wechat, "wechat", "", "WeChat handle")
	profileUpdateCmd.Flags().StringVar(&profileForm.weibo, "weibo", "", "Weibo handle")
	profileUpdateCmd.Flags().StringVar(&profileForm.img, "img", "", "Banner image URL")
	profileUpdateCmd.Flags().StringVar(&profileForm.avatar, "avatar", "", "Avatar image URL")
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	profile, err := a.api.GetProfile(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Name:   %s\n", profile.Name)
	fmt.Printf("Bio:    %s\n", profile.Desc)
	fmt.Printf("Email:  %s\n", profile.Email)
	fmt.Printf("WeChat: %s\n", profile.WeChat)
	fmt.Printf("Weibo:  %s\n", profile.Weibo)
	fmt.Printf("Avatar: %s\n", profile.Avatar)
	fmt.Printf("Banner: %s\n", profile.Img)
	return nil
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	current, err := a.api.GetProfile(cmd.Context())
	if err != nil {
		return err
	}

	form := blogapi.ReqUpdateProfile{
		Name:   current.Name,
		Desc:   current.Desc,
		WeChat: current.WeChat,
		Weibo:  current.Weibo,
		Img:    current.Img,
		Avatar: current.Avatar,
	}
	if cmd.Flags().Changed("name") {
		form.Name = profileForm.name
	}
	if cmd.Flags().Changed("desc") {
		form.Desc = profileForm.desc
	}
	if cmd.Flags().Changed("wechat") {
		form.WeChat = profileForm.wechat
	}
	if cmd.Flags().Changed("weibo") {
		form.Weibo = profileForm.weibo
	}
	if cmd.Flags().Changed("img") {
		form.Img = profileForm.img
	}
	if cmd.Flags().Changed("avatar") {
		form.Avatar = profileForm.avatar
	}

	if err := listing.ValidateForm(form); err != nil {
		return err
	}

	if _, err := a.api.UpdateProfile(cmd.Context(), form); err != nil {
		return err
	}
	fmt.Println("Profile updated")
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	url, err := a.api.Upload(cmd.Context(), filepath.Base(args[0]), file)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}
