package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// MaxUploadSize is the largest file accepted for upload. Checked locally
// before any network traffic.
const MaxUploadSize = 10 << 20 // 10 MiB

// Upload describes a file to be posted as a new item. Caption is a pointer
// so that "no caption" is distinguishable from an empty caption: a nil
// Caption is omitted from the payload entirely.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
	Caption     *string
}

// validate checks the client-side upload preconditions. It never touches
// the network.
func (u Upload) validate() error {
	if u.Content == nil || u.Filename == "" {
		return &ValidationError{Field: "file", Reason: "no file chosen"}
	}
	if !strings.HasPrefix(u.ContentType, "image/") {
		return &ValidationError{Field: "file", Reason: "only image files are allowed"}
	}
	if u.Size > MaxUploadSize {
		return &ValidationError{Field: "file", Reason: "file must be 10 MB or smaller"}
	}
	return nil
}

// ListItems fetches all items. The token is attached when present; the
// route itself is readable without one.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/items/", nil)
	if err != nil {
		return nil, err
	}

	var payload itemsResponse
	if err := c.send(req, &payload, true); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "missing id parameter"}
	}

	req, err := c.newRequest(ctx, http.MethodGet, itemPath(id), nil)
	if err != nil {
		return nil, err
	}

	var item Item
	if err := c.send(req, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// UploadItem posts a new item as multipart form data. The caption field is
// omitted from the payload when Upload.Caption is nil. Validation failures
// are returned before any request is made.
func (c *Client) UploadItem(ctx context.Context, upload Upload) (*Item, error) {
	if err := upload.validate(); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreatePart(fileHeader("file", upload.Filename, upload.ContentType))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, err
	}
	if upload.Caption != nil {
		if err := form.WriteField("caption", *upload.Caption); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var item Item
	if err := c.send(req, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces an item's caption via a partial update. The response
// is the server's canonical item; callers adopt it wholesale instead of
// merging it with local state.
func (c *Client) UpdateItem(ctx context.Context, id, caption string) (*Item, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "missing id parameter"}
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("caption", caption); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPatch, itemPath(id), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var item Item
	if err := c.send(req, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item. Success is signaled purely by the response
// status; no body is expected.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Reason: "missing id parameter"}
	}

	req, err := c.newRequest(ctx, http.MethodDelete, itemPath(id), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil, true)
}

func itemPath(id string) string {
	return "/items/" + url.PathEscape(id)
}

// fileHeader builds the MIME header of a file part carrying the declared
// content type, which multipart.Writer.CreateFormFile would discard.
func fileHeader(field, filename, contentType string) textproto.MIMEHeader {
	quoteEscaper := strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	return h
}
