package client

import "strings"

// uploadsPrefix is the conventional location filenames resolve under when
// an item carries no usable URL.
const uploadsPrefix = "/uploads/"

// ItemImageURL resolves the displayable image location of an item. A URL is
// only trusted when it is absolute (http/https) or root-relative; anything
// else falls back to the conventional uploads path keyed by filename. An
// empty result means "no image available" and consumers render a
// placeholder rather than omitting the image.
func ItemImageURL(item Item) string {
	if u := item.URL; u != "" &&
		(strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "/")) {
		return u
	}
	if item.Filename != "" {
		return uploadsPrefix + item.Filename
	}
	return ""
}
