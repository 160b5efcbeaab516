package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gallerykit/gallerykit/client"
)

func run(ctx context.Context, api *client.Client, command string, args []string) error {
	switch command {
	case "register":
		return cmdRegister(ctx, api, args)
	case "login":
		return cmdLogin(ctx, api, args)
	case "logout":
		return cmdLogout(ctx, api)
	case "whoami":
		return cmdWhoami(ctx, api)
	case "list":
		return cmdList(ctx, api)
	case "show":
		return cmdShow(ctx, api, args)
	case "upload":
		return cmdUpload(ctx, api, args)
	case "edit":
		return cmdEdit(ctx, api, args)
	case "delete":
		return cmdDelete(ctx, api, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdRegister(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "Username")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password")
	_ = fs.Parse(args)

	user, err := api.Register(ctx, *username, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Account created: %s <%s>\n", user.Username, user.Email)
	return nil
}

func cmdLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	_ = fs.Parse(args)

	if _, err := api.Login(ctx, *username, *password); err != nil {
		return err
	}

	var user client.User
	if api.Session().User(ctx, &user) {
		fmt.Printf("Logged in as %s\n", user.Username)
	} else {
		fmt.Println("Logged in")
	}

	// Where the user was headed before authentication was forced.
	if back := api.Session().TakeReturnURL(ctx); back != "" {
		fmt.Printf("Continue at %s\n", back)
	}
	return nil
}

func cmdLogout(ctx context.Context, api *client.Client) error {
	if err := api.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func cmdWhoami(ctx context.Context, api *client.Client) error {
	user, err := api.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %s)\n", user.Username, user.Email, user.ID)
	return nil
}

func cmdList(ctx context.Context, api *client.Client) error {
	items, err := api.ListItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No posts yet.")
		return nil
	}
	for _, item := range items {
		printItem(item)
	}
	return nil
}

func cmdShow(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "Post id")
	_ = fs.Parse(args)

	item, err := api.GetItem(ctx, *id)
	if err != nil {
		return err
	}
	printItem(*item)
	return nil
}

func cmdUpload(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	path := fs.String("file", "", "Image file to upload")
	caption := fs.String("caption", "", "Caption (omitted entirely when the flag is not given)")
	_ = fs.Parse(args)

	if *path == "" {
		return &client.ValidationError{Field: "file", Reason: "no file chosen"}
	}

	file, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	upload := client.Upload{
		Filename:    filepath.Base(*path),
		ContentType: mime.TypeByExtension(filepath.Ext(*path)),
		Size:        info.Size(),
		Content:     file,
	}
	// An explicitly passed empty -caption is still a caption.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "caption" {
			upload.Caption = caption
		}
	})

	item, err := api.UploadItem(ctx, upload)
	if err != nil {
		return err
	}
	fmt.Println("Uploaded:")
	printItem(*item)
	return nil
}

func cmdEdit(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "Post id")
	caption := fs.String("caption", "", "New caption")
	_ = fs.Parse(args)

	item, err := api.UpdateItem(ctx, *id, *caption)
	if err != nil {
		return err
	}
	// Render exactly what the server returned, not a local merge.
	fmt.Println("Updated:")
	printItem(*item)
	return nil
}

func cmdDelete(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "Post id")
	_ = fs.Parse(args)

	if err := api.DeleteItem(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Deleted", *id)
	return nil
}

func printItem(item client.Item) {
	caption := item.Caption
	if caption == "" {
		caption = "(no caption)"
	}
	image := client.ItemImageURL(item)
	if image == "" {
		image = "(no image available)"
	}

	meta := make([]string, 0, 2)
	if item.FileType != "" {
		meta = append(meta, item.FileType)
	}
	if !item.CreatedAt.IsZero() {
		meta = append(meta, item.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Printf("%s  %s\n", item.ID, caption)
	fmt.Printf("    %s\n", image)
	if len(meta) > 0 {
		fmt.Printf("    %s\n", strings.Join(meta, " | "))
	}
}
