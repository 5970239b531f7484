package console

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRLF(t *testing.T) {
	var buf bytes.Buffer
	w := CRLF(&buf)

	n, err := w.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "one\r\ntwo\r\n", buf.String())
}

func TestOpenPipeDeliversKeys(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	c, err := Open(r)
	require.NoError(t, err)
	assert.False(t, c.Raw(), "a pipe is not a terminal")

	_, err = w.WriteString("d\n3Q\x03")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var got []rune
	timeout := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case k, ok := <-c.Keys():
			if !ok {
				done = true
				break
			}
			got = append(got, k)
		case <-timeout:
			t.Fatal("timed out waiting for keys")
		}
	}
	assert.Equal(t, []rune{'d', '3', 'Q', KeyInterrupt}, got)
	assert.NoError(t, c.Close())
}
