package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallerykit/gallerykit/client"
)

const itemJSON = `{"id":"i1","filename":"cat.png","url":"https://cdn.example.com/cat.png","caption":"a cat","file_type":"image/png","created_at":"2024-05-01T10:00:00Z"}`

func strPtr(s string) *string { return &s }

func TestListItems(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Get("/items/", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"items":[`+itemJSON+`],"total":1}`)
			})
		}))

		items, err := f.api.ListItems(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "i1", items[0].ID)
		assert.Equal(t, "a cat", items[0].Caption)
	})

	t.Run("works without a token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Get("/items/", func(w http.ResponseWriter, req *http.Request) {
				// No token, no Authorization header; the server decides.
				assert.Empty(t, req.Header.Get("Authorization"))
				writeJSON(w, http.StatusOK, `{"items":[],"total":0}`)
			})
		}))

		items, err := f.api.ListItems(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("server error with plain text body", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Get("/items/", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream down"))
			})
		}))

		_, err := f.api.ListItems(context.Background())
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "upstream down", apiErr.Detail)
	})

	t.Run("server error with empty body uses reason phrase", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Get("/items/", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			})
		}))

		_, err := f.api.ListItems(context.Background())
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), apiErr.Detail)
	})
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Get("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
				assert.Equal(t, "i1", chi.URLParam(req, "id"))
				writeJSON(w, http.StatusOK, itemJSON)
			})
		}))

		item, err := f.api.GetItem(context.Background(), "i1")
		require.NoError(t, err)
		assert.Equal(t, "cat.png", item.Filename)
		assert.Equal(t, "image/png", item.FileType)
	})

	t.Run("id is path-escaped", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			gotPath = req.URL.EscapedPath()
			writeJSON(w, http.StatusOK, itemJSON)
		}))

		_, err := f.api.GetItem(context.Background(), "a/b c")
		require.NoError(t, err)
		assert.Equal(t, "/items/a%2Fb%20c", gotPath)
	})

	t.Run("missing id fails locally", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
		}))

		_, err := f.api.GetItem(context.Background(), "")
		var valErr *client.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "id", valErr.Field)
		assert.Zero(t, requests.Load())
	})
}

func TestUploadItem(t *testing.T) {
	t.Parallel()

	t.Run("success with caption", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Post("/upload", func(w http.ResponseWriter, req *http.Request) {
				assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
				require.NoError(t, req.ParseMultipartForm(32<<20))

				file, header, err := req.FormFile("file")
				require.NoError(t, err)
				defer file.Close()
				assert.Equal(t, "cat.png", header.Filename)
				assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
				content, err := io.ReadAll(file)
				require.NoError(t, err)
				assert.Equal(t, "fake png bytes", string(content))

				assert.Equal(t, []string{"a cat"}, req.MultipartForm.Value["caption"])

				writeJSON(w, http.StatusCreated, itemJSON)
			})
		}))
		saveToken(t, f.sess, "tok")

		item, err := f.api.UploadItem(context.Background(), client.Upload{
			Filename:    "cat.png",
			ContentType: "image/png",
			Size:        14,
			Content:     strings.NewReader("fake png bytes"),
			Caption:     strPtr("a cat"),
		})
		require.NoError(t, err)
		assert.Equal(t, "i1", item.ID)
	})

	t.Run("nil caption is omitted, empty caption is sent", func(t *testing.T) {
		t.Parallel()

		var captions [][]string
		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Post("/upload", func(w http.ResponseWriter, req *http.Request) {
				require.NoError(t, req.ParseMultipartForm(32<<20))
				captions = append(captions, req.MultipartForm.Value["caption"])
				writeJSON(w, http.StatusCreated, itemJSON)
			})
		}))

		upload := func(caption *string) {
			_, err := f.api.UploadItem(context.Background(), client.Upload{
				Filename:    "cat.png",
				ContentType: "image/png",
				Size:        1,
				Content:     strings.NewReader("x"),
				Caption:     caption,
			})
			require.NoError(t, err)
		}

		upload(nil)
		upload(strPtr(""))

		require.Len(t, captions, 2)
		assert.Nil(t, captions[0], "nil caption must not appear in the payload")
		assert.Equal(t, []string{""}, captions[1])
	})

	t.Run("local validation happens before any request", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
		}))

		cases := []struct {
			name   string
			upload client.Upload
			reason string
		}{
			{
				name:   "no file chosen",
				upload: client.Upload{},
				reason: "no file chosen",
			},
			{
				name: "not an image",
				upload: client.Upload{
					Filename:    "notes.txt",
					ContentType: "text/plain",
					Size:        4,
					Content:     strings.NewReader("text"),
				},
				reason: "only image files are allowed",
			},
			{
				name: "too large",
				upload: client.Upload{
					Filename:    "huge.png",
					ContentType: "image/png",
					Size:        15 << 20,
					Content:     strings.NewReader("pretend this is 15 MB"),
				},
				reason: "file must be 10 MB or smaller",
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.api.UploadItem(context.Background(), tc.upload)
				var valErr *client.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, tc.reason, valErr.Reason)
			})
		}
		assert.Zero(t, requests.Load(), "validation failures must not reach the network")
	})
}

func TestUpdateItem(t *testing.T) {
	t.Parallel()

	t.Run("adopts the server's canonical item verbatim", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Patch("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
				require.NoError(t, req.ParseMultipartForm(1<<20))
				assert.Equal(t, "new caption", req.MultipartForm.Value["caption"][0])

				// Server returns more than the caller sent: normalized
				// caption plus server-maintained metadata.
				writeJSON(w, http.StatusOK, `{"id":"i1","filename":"cat-v2.png","caption":"new caption (moderated)","file_type":"image/png","created_at":"2024-05-02T08:30:00Z"}`)
			})
		}))
		saveToken(t, f.sess, "tok")

		item, err := f.api.UpdateItem(context.Background(), "i1", "new caption")
		require.NoError(t, err)
		assert.Equal(t, "new caption (moderated)", item.Caption)
		assert.Equal(t, "cat-v2.png", item.Filename)
	})

	t.Run("missing id fails locally", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, http.NotFoundHandler())
		_, err := f.api.UpdateItem(context.Background(), "", "cap")
		var valErr *client.ValidationError
		require.ErrorAs(t, err, &valErr)
	})
}

func TestDeleteItem(t *testing.T) {
	t.Parallel()

	t.Run("success on 204", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, galleryStub(func(r chi.Router) {
			r.Delete("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
				assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
				w.WriteHeader(http.StatusNoContent)
			})
		}))
		saveToken(t, f.sess, "tok")

		require.NoError(t, f.api.DeleteItem(context.Background(), "i1"))
	})

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		api := client.New(server.URL)
		err := api.DeleteItem(context.Background(), "i1")
		assert.True(t, client.IsNetworkError(err))
	})
}
