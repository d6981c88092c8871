package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lealre/comments-backend/internal/api"
	"github.com/lealre/comments-backend/internal/mongodb"
	"github.com/lealre/comments-backend/internal/services/comments/commentstest"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestServer(t *testing.T, store *commentstest.MemoryStore) *httptest.Server {
	t.Helper()

	a := api.NewAPI(store, 0)
	srv := httptest.NewServer(a.CommentRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func requireError(t *testing.T, resp *http.Response, status int, msg string) {
	t.Helper()

	require.Equal(t, status, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body := decodeBody[api.ErrorResponse](t, resp)
	require.Equal(t, msg, body.Error)
}

func TestGetAllComments(t *testing.T) {
	t.Run("Empty collection returns an empty array", func(t *testing.T) {
		srv := newTestServer(t, commentstest.NewMemoryStore())

		resp := doRequest(t, http.MethodGet, srv.URL+"/", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw := new(bytes.Buffer)
		_, err := raw.ReadFrom(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "[]", raw.String())
	})

	t.Run("Every comment is returned", func(t *testing.T) {
		store := commentstest.NewMemoryStore(
			mongodb.Document{{Key: "body", Value: "first"}},
			mongodb.Document{{Key: "body", Value: "second"}},
		)
		srv := newTestServer(t, store)

		resp := doRequest(t, http.MethodGet, srv.URL+"/", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := decodeBody[[]map[string]any](t, resp)
		require.Len(t, list, 2)
		require.Equal(t, "first", list[0]["body"])
		require.Equal(t, "second", list[1]["body"])
		require.NotEmpty(t, list[0]["id"])
	})

	t.Run("Store failure returns 500", func(t *testing.T) {
		store := commentstest.NewMemoryStore()
		store.SetErr(errors.New("server selection timeout"))
		srv := newTestServer(t, store)

		resp := doRequest(t, http.MethodGet, srv.URL+"/", "")
		requireError(t, resp, http.StatusInternalServerError, "Failed to fetch comments")
	})
}

func TestAddComment(t *testing.T) {
	t.Run("Created comment is returned with its id", func(t *testing.T) {
		store := commentstest.NewMemoryStore()
		srv := newTestServer(t, store)

		resp := doRequest(t, http.MethodPost, srv.URL+"/", `{"body":"Loved it","author":"ana","rating":5}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		created := decodeBody[map[string]any](t, resp)
		require.Equal(t, "Loved it", created["body"])
		require.Equal(t, "ana", created["author"])
		require.Equal(t, float64(5), created["rating"])
		require.NotEmpty(t, created["createdAt"])
		require.Equal(t, created["createdAt"], created["updatedAt"])

		id, ok := created["id"].(string)
		require.True(t, ok)
		_, err := primitive.ObjectIDFromHex(id)
		require.NoError(t, err)

		require.Equal(t, 1, store.Len())
	})

	t.Run("Fields keep the order they were sent in", func(t *testing.T) {
		srv := newTestServer(t, commentstest.NewMemoryStore())

		resp := doRequest(t, http.MethodPost, srv.URL+"/", `{"zeta":1,"body":"x","alpha":2}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		raw := new(bytes.Buffer)
		_, err := raw.ReadFrom(resp.Body)
		require.NoError(t, err)

		out := raw.String()
		require.True(t, strings.HasPrefix(out, `{"id":`))
		require.Less(t, strings.Index(out, `"zeta"`), strings.Index(out, `"body"`))
		require.Less(t, strings.Index(out, `"body"`), strings.Index(out, `"alpha"`))
		require.Less(t, strings.Index(out, `"alpha"`), strings.Index(out, `"createdAt"`))
	})

	t.Run("Malformed bodies return 400", func(t *testing.T) {
		store := commentstest.NewMemoryStore()
		srv := newTestServer(t, store)

		for _, body := range []string{"", "not json", `["body"]`, `{"body":`} {
			resp := doRequest(t, http.MethodPost, srv.URL+"/", body)
			requireError(t, resp, http.StatusBadRequest, "Failed to create comment")
		}
		require.Zero(t, store.Calls())
	})

	t.Run("Validation failures return 400 without details", func(t *testing.T) {
		srv := newTestServer(t, commentstest.NewMemoryStore())

		for _, body := range []string{`{}`, `{"body":""}`, `{"body":12}`, `{"body":"x","a.b":1}`} {
			resp := doRequest(t, http.MethodPost, srv.URL+"/", body)
			requireError(t, resp, http.StatusBadRequest, "Failed to create comment")
		}
	})

	t.Run("Repeated keys return 400 and nothing is stored", func(t *testing.T) {
		store := commentstest.NewMemoryStore()
		srv := newTestServer(t, store)

		for _, body := range []string{`{"body":"","body":"ok"}`, `{"body":"ok","meta":{"a":1,"a":2}}`} {
			resp := doRequest(t, http.MethodPost, srv.URL+"/", body)
			requireError(t, resp, http.StatusBadRequest, "Failed to create comment")
		}
		require.Zero(t, store.Calls())
	})

	t.Run("Operator style keys return 400", func(t *testing.T) {
		store := commentstest.NewMemoryStore()
		srv := newTestServer(t, store)

		for _, body := range []string{
			`{"body":"x","m":{"$oid":"5f1d7f1e2c3b4a5d6e7f8091"}}`,
			`{"body":"x","m":{"$oid":"zz"}}`,
			`{"body":"x","d":{"$date":"2020-01-01T00:00:00Z"}}`,
		} {
			resp := doRequest(t, http.MethodPost, srv.URL+"/", body)
			requireError(t, resp, http.StatusBadRequest, "Failed to create comment")
		}
		require.Zero(t, store.Len())
	})

	t.Run("Store failure returns 500", func(t *testing.T) {
		store := commentstest.NewMemoryStore()
		store.SetErr(errors.New("connection reset"))
		srv := newTestServer(t, store)

		resp := doRequest(t, http.MethodPost, srv.URL+"/", `{"body":"x"}`)
		requireError(t, resp, http.StatusInternalServerError, "Failed to create comment")
	})
}

func TestGetCommentById(t *testing.T) {
	store := commentstest.NewMemoryStore()
	srv := newTestServer(t, store)

	resp := doRequest(t, http.MethodPost, srv.URL+"/", `{"body":"round trip","nested":{"a":[1,2]}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[map[string]any](t, resp)
	id := created["id"].(string)

	t.Run("Created comment can be fetched unchanged", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/"+id, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, created, decodeBody[map[string]any](t, resp))
	})

	t.Run("Well formed unknown id returns 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/"+primitive.NewObjectID().Hex(), "")
		requireError(t, resp, http.StatusNotFound, "Comment not found")
	})

	t.Run("Malformed id returns 400", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/not-an-id", "")
		requireError(t, resp, http.StatusBadRequest, "Invalid comment ID")
	})

	t.Run("Store failure returns 500", func(t *testing.T) {
		store.SetErr(errors.New("timeout"))
		defer store.SetErr(nil)

		resp := doRequest(t, http.MethodGet, srv.URL+"/"+id, "")
		requireError(t, resp, http.StatusInternalServerError, "Failed to fetch comment")
	})
}

func TestUpdateComment(t *testing.T) {
	store := commentstest.NewMemoryStore()
	srv := newTestServer(t, store)

	resp := doRequest(t, http.MethodPost, srv.URL+"/", `{"body":"draft","author":"ana"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[map[string]any](t, resp)
	id := created["id"].(string)

	t.Run("Fields are merged and the updated comment returned", func(t *testing.T) {
		resp := doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"body":"final","edited":true,"id":"ignored"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		updated := decodeBody[map[string]any](t, resp)
		require.Equal(t, id, updated["id"])
		require.Equal(t, "final", updated["body"])
		require.Equal(t, "ana", updated["author"])
		require.Equal(t, true, updated["edited"])
		require.Equal(t, created["createdAt"], updated["createdAt"])
	})

	t.Run("Same update twice is idempotent", func(t *testing.T) {
		first := decodeBody[map[string]any](t, doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"body":"same"}`))
		second := decodeBody[map[string]any](t, doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"body":"same"}`))

		delete(first, "updatedAt")
		delete(second, "updatedAt")
		require.Equal(t, first, second)
	})

	t.Run("Unknown id returns 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodPut, srv.URL+"/"+primitive.NewObjectID().Hex(), `{"body":"x"}`)
		requireError(t, resp, http.StatusNotFound, "Comment not found")
	})

	t.Run("Malformed id, body or data returns 400", func(t *testing.T) {
		resp := doRequest(t, http.MethodPut, srv.URL+"/123", `{"body":"x"}`)
		requireError(t, resp, http.StatusBadRequest, "Invalid comment ID or data")

		resp = doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"body":`)
		requireError(t, resp, http.StatusBadRequest, "Invalid comment ID or data")

		resp = doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"body":""}`)
		requireError(t, resp, http.StatusBadRequest, "Invalid comment ID or data")

		resp = doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"body":"","body":"ok"}`)
		requireError(t, resp, http.StatusBadRequest, "Invalid comment ID or data")

		resp = doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"m":{"$oid":"zz"}}`)
		requireError(t, resp, http.StatusBadRequest, "Invalid comment ID or data")
	})

	t.Run("Store failure returns 500", func(t *testing.T) {
		store.SetErr(errors.New("timeout"))
		defer store.SetErr(nil)

		resp := doRequest(t, http.MethodPut, srv.URL+"/"+id, `{"body":"x"}`)
		requireError(t, resp, http.StatusInternalServerError, "Failed to update comment")
	})
}

func TestDeleteComment(t *testing.T) {
	store := commentstest.NewMemoryStore()
	srv := newTestServer(t, store)

	resp := doRequest(t, http.MethodPost, srv.URL+"/", `{"body":"short lived"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeBody[map[string]any](t, resp)["id"].(string)

	t.Run("Store failure returns 500", func(t *testing.T) {
		store.SetErr(errors.New("timeout"))
		defer store.SetErr(nil)

		resp := doRequest(t, http.MethodDelete, srv.URL+"/"+id, "")
		requireError(t, resp, http.StatusInternalServerError, "Failed to delete comment")
	})

	t.Run("Deleting returns a message and the comment is gone", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, srv.URL+"/"+id, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "Comment deleted successfully", decodeBody[api.DefaultResponse](t, resp).Message)

		resp = doRequest(t, http.MethodGet, srv.URL+"/"+id, "")
		requireError(t, resp, http.StatusNotFound, "Comment not found")
		require.Equal(t, 0, store.Len())
	})

	t.Run("Deleting again returns 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, srv.URL+"/"+id, "")
		requireError(t, resp, http.StatusNotFound, "Comment not found")
	})

	t.Run("Malformed id returns 400", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, srv.URL+"/xyz", "")
		requireError(t, resp, http.StatusBadRequest, "Invalid comment ID")
	})
}
