package utils

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	for d, want := range map[time.Duration]string{
		500 * time.Millisecond:        "500ms",
		1500 * time.Millisecond:       "1.50s",
		90 * time.Second:              "1m:30s",
		2 * time.Hour:                 "2h:0m:0s",
		26*time.Hour + 90*time.Second: "1d:2h:1m:30s",
		48 * time.Hour:                "2d:0h:0m:0s",
	} {
		assert.Equal(t, want, FormatTime(d))
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.png"))
	assert.True(t, IsURL("http://example.com/a.png"))
	assert.False(t, IsURL("./http.png"))
	assert.False(t, IsURL("ftp://example.com/a.png"))
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image.png" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "image data")
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/image.png")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "image data", string(data))

	_, err = DownloadImage(srv.URL + "/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, false)

	s.Start("working")
	time.Sleep(150 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "\rworking -")
	assert.True(t, strings.HasSuffix(out, "\r"+strings.Repeat(" ", len("working")+2)+"\r"))
}
