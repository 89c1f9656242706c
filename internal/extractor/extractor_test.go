package extractor

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func vimeoServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClassifyYouTube(t *testing.T) {
	ex := NewDefault(quietLogger(), nil)

	tests := []struct {
		name string
		url  string
		id   string
	}{
		{"short link", "https://youtu.be/abc123", "abc123"},
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch link with extra params", "https://youtube.com/watch?v=a_b-C9&t=42s", "a_b-C9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ex.Classify(context.Background(), tt.url)
			require.NoError(t, err)
			assert.Equal(t, "YouTube Video "+tt.id, meta.Title)
			assert.Equal(t, "https://img.youtube.com/vi/"+tt.id+"/maxresdefault.jpg", meta.Thumbnail)
			assert.Equal(t, "https://www.youtube.com/embed/"+tt.id, meta.VideoURL)
			assert.Contains(t, meta.EmbedHTML, `<iframe`)
			assert.Contains(t, meta.EmbedHTML, `src="https://www.youtube.com/embed/`+tt.id+`"`)
		})
	}
}

func TestClassifyYouTubeIsDeterministic(t *testing.T) {
	ex := NewDefault(quietLogger(), nil)
	a, err := ex.Classify(context.Background(), "https://youtu.be/xyz_789")
	require.NoError(t, err)
	b, err := ex.Classify(context.Background(), "https://youtu.be/xyz_789")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClassifyVimeoEnriched(t *testing.T) {
	srv, calls := vimeoServer(t, http.StatusOK, `[{"title":"Sunset Timelapse","thumbnail_large":"https://i.vimeocdn.com/video/1_640.jpg"}]`)
	ex := NewDefault(quietLogger(), NewVimeoClient(srv.URL, time.Second))

	meta, err := ex.Classify(context.Background(), "https://vimeo.com/76979871")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, "Sunset Timelapse", meta.Title)
	assert.Equal(t, "https://i.vimeocdn.com/video/1_640.jpg", meta.Thumbnail)
	assert.Equal(t, "https://player.vimeo.com/video/76979871", meta.VideoURL)
	assert.Equal(t, `<iframe src="https://player.vimeo.com/video/76979871" width="100%" height="400" frameborder="0" allowfullscreen></iframe>`, meta.EmbedHTML)
}

func TestClassifyVimeoMissingFields(t *testing.T) {
	srv, _ := vimeoServer(t, http.StatusOK, `[{"id":42}]`)
	ex := NewDefault(quietLogger(), NewVimeoClient(srv.URL, time.Second))

	meta, err := ex.Classify(context.Background(), "https://vimeo.com/42")
	require.NoError(t, err)
	assert.Equal(t, "Vimeo Video 42", meta.Title)
	assert.Empty(t, meta.Thumbnail)
}

func TestClassifyVimeoFallback(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"not found", http.StatusNotFound, `[]`},
		{"malformed json", http.StatusOK, `{not json`},
		{"empty array", http.StatusOK, `[]`},
		{"object instead of array", http.StatusOK, `{"title":"x"}`},
	}

	want := "https://player.vimeo.com/video/12345"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := vimeoServer(t, tt.status, tt.body)
			ex := NewDefault(quietLogger(), NewVimeoClient(srv.URL, time.Second))

			meta, err := ex.Classify(context.Background(), "https://vimeo.com/12345")
			require.NoError(t, err)
			assert.Equal(t, "Vimeo Video 12345", meta.Title)
			assert.Empty(t, meta.Thumbnail)
			assert.Equal(t, want, meta.VideoURL)
			assert.Contains(t, meta.EmbedHTML, want)
		})
	}
}

func TestClassifyVimeoOversizedResponse(t *testing.T) {
	body := `[{"title":"` + strings.Repeat("a", 2*maxVimeoResponse) + `","thumbnail_large":"T"}]`
	srv, _ := vimeoServer(t, http.StatusOK, body)
	ex := NewDefault(quietLogger(), NewVimeoClient(srv.URL, 5*time.Second))

	meta, err := ex.Classify(context.Background(), "https://vimeo.com/555")
	require.NoError(t, err)
	assert.Equal(t, "Vimeo Video 555", meta.Title)
	assert.Empty(t, meta.Thumbnail)
	assert.Equal(t, "https://player.vimeo.com/video/555", meta.VideoURL)
}

func TestClassifyVimeoTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ex := NewDefault(quietLogger(), NewVimeoClient(srv.URL, 50*time.Millisecond))

	start := time.Now()
	meta, err := ex.Classify(context.Background(), "https://vimeo.com/99")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "Vimeo Video 99", meta.Title)
	assert.Equal(t, "https://player.vimeo.com/video/99", meta.VideoURL)
}

func TestClassifyVimeoUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ex := NewDefault(quietLogger(), NewVimeoClient(url, time.Second))
	meta, err := ex.Classify(context.Background(), "https://vimeo.com/7")
	require.NoError(t, err)
	assert.Equal(t, "Vimeo Video 7", meta.Title)
}

func TestClassifyVimeoPlayerFieldsIgnoreEnrichment(t *testing.T) {
	ok, _ := vimeoServer(t, http.StatusOK, `[{"title":"A","thumbnail_large":"T"}]`)
	bad, _ := vimeoServer(t, http.StatusBadGateway, ``)

	enriched, err := NewDefault(quietLogger(), NewVimeoClient(ok.URL, time.Second)).Classify(context.Background(), "https://vimeo.com/555")
	require.NoError(t, err)
	fallback, err := NewDefault(quietLogger(), NewVimeoClient(bad.URL, time.Second)).Classify(context.Background(), "https://vimeo.com/555")
	require.NoError(t, err)

	assert.Equal(t, enriched.VideoURL, fallback.VideoURL)
	assert.Equal(t, enriched.EmbedHTML, fallback.EmbedHTML)
	assert.NotEqual(t, enriched.Title, fallback.Title)
}

func TestClassifyDirectFile(t *testing.T) {
	ex := NewDefault(quietLogger(), nil)

	tests := []struct {
		url   string
		title string
	}{
		{"https://example.com/clip.mov", "clip.mov"},
		{"https://cdn.example.com/media/movie.MP4", "movie.MP4"},
		{"https://example.com/a/b/talk.webm?token=abc&x=1", "talk.webm"},
		{"http://example.com/sound.ogg", "sound.ogg"},
		{"http://example.com/old.AVI#t=10", "old.AVI"},
		{"https://example.com/100%.mp4", "100%.mp4"},
		{"https://example.com/100%.mp4?dl=1", "100%.mp4"},
		{"https://example.com/my%20clip.mp4", "my%20clip.mp4"},
		{"https://example.com/a%2Fclip.mp4", "a%2Fclip.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			meta, err := ex.Classify(context.Background(), tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.title, meta.Title)
			assert.Empty(t, meta.Thumbnail)
			assert.Equal(t, tt.url, meta.VideoURL)
			assert.Contains(t, meta.EmbedHTML, `type="video/mp4"`)
			assert.Contains(t, meta.EmbedHTML, "<video")
			assert.Contains(t, meta.EmbedHTML, "Your browser does not support the video tag.")
		})
	}
}

func TestClassifyDirectFileEscapesSource(t *testing.T) {
	ex := NewDefault(quietLogger(), nil)
	meta, err := ex.Classify(context.Background(), "https://example.com/v.mp4?a=1&b=2")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v.mp4?a=1&b=2", meta.VideoURL)
	assert.Contains(t, meta.EmbedHTML, `src="https://example.com/v.mp4?a=1&amp;b=2"`)
}

func TestClassifyUnsupported(t *testing.T) {
	ex := NewDefault(quietLogger(), nil)

	for _, u := range []string{
		"",
		"https://example.com/page.html",
		"https://vimeo.com/channels/staffpicks",
		"https://example.com/video.mp4.txt",
		"https://example.com/?file=clip.mp4",
		"not a url at all",
		"https://example.com/clip%2Emp4",
		"https://example.com/100%.txt?f=clip.mp4",
	} {
		meta, err := ex.Classify(context.Background(), u)
		assert.ErrorIs(t, err, ErrUnsupportedURL, u)
		assert.Nil(t, meta, u)
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	ex := NewDefault(quietLogger(), nil)
	meta, err := ex.Classify(context.Background(), "https://youtu.be/abc/clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "YouTube Video abc", meta.Title)
}
