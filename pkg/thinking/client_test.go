package thinking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReply(t *testing.T) {
	reply, err := ParseReply(`{"action": "dance", "response": "Let's boogie!"}`)
	require.NoError(t, err)
	assert.Equal(t, "dance", reply.Action)
	assert.Equal(t, "Let's boogie!", reply.Response)
}

func TestParseReplyFenced(t *testing.T) {
	content := "```json\n{\"action\": \"wave\", \"response\": \"Hi!\"}\n```"
	reply, err := ParseReply(content)
	require.NoError(t, err)
	assert.Equal(t, "wave", reply.Action)
}

func TestParseReplyMalformed(t *testing.T) {
	_, err := ParseReply("I would love to dance!")
	assert.ErrorIs(t, err, ErrBadReply)

	_, err = ParseReply(`{"response": "no action here"}`)
	assert.ErrorIs(t, err, ErrBadReply)
}

func TestReplySteps(t *testing.T) {
	reply := Reply{Parameters: map[string]any{"steps": float64(6)}}
	assert.Equal(t, 6, reply.Steps(2))

	assert.Equal(t, 2, Reply{}.Steps(2))
	assert.Equal(t, 2, Reply{Parameters: map[string]any{"steps": "lots"}}.Steps(2))
	assert.Equal(t, 2, Reply{Parameters: map[string]any{"steps": float64(-1)}}.Steps(2))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestProcessCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "scuttle ahead")

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{
					"role":    "assistant",
					"content": `{"action": "walk_forward", "parameters": {"steps": 3}, "response": "On my way!"}`,
				},
			}},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-key")
	require.NoError(t, err)
	client.SetBaseURL(srv.URL)

	reply, err := client.ProcessCommand(context.Background(), "scuttle ahead")
	require.NoError(t, err)
	assert.Equal(t, "walk_forward", reply.Action)
	assert.Equal(t, 3, reply.Steps(4))
	assert.Equal(t, "On my way!", reply.Response)
}

func TestProcessCommandAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid key"},
		})
	}))
	defer srv.Close()

	client, err := NewClient("bad-key")
	require.NoError(t, err)
	client.SetBaseURL(srv.URL)

	_, err = client.ProcessCommand(context.Background(), "dance")
	assert.Error(t, err)
}

func TestThoughtTruncated(t *testing.T) {
	long := "This is a very long spider thought that goes on and on about flies"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{"role": "assistant", "content": long},
			}},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-key")
	require.NoError(t, err)
	client.SetBaseURL(srv.URL)

	thought, err := client.Thought(context.Background(), 42.0, false)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(thought), 50)
}
