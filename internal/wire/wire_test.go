package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"

	"go.klb.dev/clipring/internal/message"
)

func TestRegistered(t *testing.T) {
	c := encoding.GetCodecV2(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}

func TestCodecCarriesContent(t *testing.T) {
	sent := &message.History{
		Entries: []message.Entry{
			{Position: 1, Content: "multi\nline"},
			{Position: 2, Content: strings.Repeat("x", 70000)},
		},
		Capacity: 10,
	}

	b, err := Codec{}.Marshal(sent)
	require.NoError(t, err)

	var got message.History
	require.NoError(t, Codec{}.Unmarshal(b, &got))
	assert.Equal(t, 10, got.Capacity)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "multi\nline", got.Entries[0].Content)
	assert.Len(t, got.Entries[1].Content, 70000)
}

func TestUnmarshalGarbage(t *testing.T) {
	var got message.RestoreRequest
	assert.Error(t, Codec{}.Unmarshal([]byte("not json"), &got))
}
