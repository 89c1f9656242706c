package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type EnrichmentKind int

const (
	Fallback EnrichmentKind = iota
	Enriched
)

// Enrichment is the outcome of the optional metadata lookup. A Fallback
// carries no data and callers use their placeholders.
type Enrichment struct {
	Kind      EnrichmentKind `json:"kind"`
	Title     string         `json:"title,omitempty"`
	Thumbnail string         `json:"thumbnail,omitempty"`
}

type vimeoVideo struct {
	Title          string `json:"title"`
	ThumbnailLarge string `json:"thumbnail_large"`
}

// VimeoClient talks to the public Vimeo v2 metadata API.
type VimeoClient struct {
	url string
	cl  *http.Client
}

func NewVimeoClient(baseURL string, timeout time.Duration) *VimeoClient {
	return &VimeoClient{
		url: strings.TrimRight(baseURL, "/"),
		cl:  &http.Client{Timeout: timeout},
	}
}

// A metadata answer is a few kilobytes; anything past this is not read.
const maxVimeoResponse = 1 << 20

// video fetches the first entry of /<id>.json.
func (api *VimeoClient) video(ctx context.Context, id string) (*vimeoVideo, error) {
	reqURL := fmt.Sprintf("%s/%s.json", api.url, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	var videos []vimeoVideo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxVimeoResponse)).Decode(&videos); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	if len(videos) == 0 {
		return nil, errors.New("empty response")
	}
	return &videos[0], nil
}

// Enrich never fails: any problem with the lookup yields a Fallback.
func (api *VimeoClient) Enrich(ctx context.Context, id string) (Enrichment, error) {
	if api == nil {
		return Enrichment{Kind: Fallback}, errors.New("vimeo client not configured")
	}
	v, err := api.video(ctx, id)
	if err != nil {
		return Enrichment{Kind: Fallback}, errors.Wrapf(err, "vimeo video %s", id)
	}
	return Enrichment{Kind: Enriched, Title: v.Title, Thumbnail: v.ThumbnailLarge}, nil
}
