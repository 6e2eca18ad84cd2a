package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/gallery-client/internal/app"
	"github.com/samvad-hq/gallery-client/internal/logger"
	"github.com/samvad-hq/gallery-client/pkg/gallery"
)

type runFunc func(cmd *cobra.Command, a *app.App, args []string) error

// withApp builds the runtime for one command and tears it down afterwards.
func withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), app.IO{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer logger.Close()
		defer a.Close()
		return fn(cmd, a, args)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gallery",
		Short:        "Photo gallery client",
		Long:         `Command line client for the photo gallery API.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newStatusCmd(),
		newPhotosCmd(),
		newCategoriesCmd(),
		newTagsCmd(),
		newUploadCmd(),
	)
	return root
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <name> <password>",
		Short: "Log in and store the token",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			if err := a.Session.Login(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return a.Toaster.Success(cmd.Context(), "logged in as "+args[0])
		}),
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			if err := a.Session.Logout(); err != nil {
				return err
			}
			return a.Toaster.Success(cmd.Context(), "logged out")
		}),
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			msg, err := a.Session.Register(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.Toaster.Success(cmd.Context(), msg+" Please log in.")
		}),
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the stored token is still valid",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			ok, err := a.Session.CheckStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("verify token: %w", err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return nil
		}),
	}
}

func newPhotosCmd() *cobra.Command {
	photos := &cobra.Command{
		Use:   "photos",
		Short: "List and manage photos",
	}

	var q gallery.PhotoQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List photos",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			page, err := a.Gallery.ListPhotos(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd, page)
		}),
	}
	list.Flags().IntVar(&q.Page, "page", 1, "page number, starting at 1")
	list.Flags().IntVar(&q.Limit, "limit", 10, "photos per page")
	list.Flags().StringVar(&q.CategoryID, "category", "", "filter by category id")
	list.Flags().StringSliceVar(&q.Tags, "tag", nil, "filter by tag (repeatable, all must match)")

	var (
		title, description, category string
		tags                         []string
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change title, description, category or tags",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			var u gallery.PhotoUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				u.Title = &title
			}
			if flags.Changed("description") {
				u.Description = &description
			}
			if flags.Changed("category") {
				u.CategoryID = &category
			}
			if flags.Changed("tag") {
				u.Tags = tags
			}
			if u.Title == nil && u.Description == nil && u.CategoryID == nil && u.Tags == nil {
				return errors.New("nothing to update")
			}
			photo, err := a.Gallery.UpdatePhoto(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			return printJSON(cmd, photo)
		}),
	}
	update.Flags().StringVar(&title, "title", "", "new title")
	update.Flags().StringVar(&description, "description", "", "new description")
	update.Flags().StringVar(&category, "category", "", "new category id")
	update.Flags().StringSliceVar(&tags, "tag", nil, "replace tags (repeatable)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a photo",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			if err := a.Gallery.DeletePhoto(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.Toaster.Success(cmd.Context(), "deleted "+args[0])
		}),
	}

	photos.AddCommand(list, update, del)
	return photos
}

func newCategoriesCmd() *cobra.Command {
	categories := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			cats, err := a.Gallery.Categories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, cats)
		}),
	}
	categories.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			cat, err := a.Gallery.CreateCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, cat)
		}),
	})
	return categories
}

func newTagsCmd() *cobra.Command {
	tags := &cobra.Command{
		Use:   "tags",
		Short: "List popular tags",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			list, err := a.Gallery.PopularTags(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, list)
		}),
	}
	tags.AddCommand(&cobra.Command{
		Use:   "add <tag>",
		Short: "Add a popular tag",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			return a.Gallery.AddPopularTag(cmd.Context(), args[0])
		}),
	})
	return tags
}

func newUploadCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open upload file: %w", err)
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat upload file: %w", err)
			}

			var progress func(gallery.Progress)
			if !quiet {
				progress = func(p gallery.Progress) {
					fmt.Fprintf(cmd.ErrOrStderr(), "\ruploading %d%%", p.Percent)
				}
			}
			res, err := a.Uploads.Upload(cmd.Context(), gallery.UploadFile{
				Name:   filepath.Base(args[0]),
				Reader: f,
				Size:   info.Size(),
			}, progress)
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		}),
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide upload progress")
	return cmd
}
