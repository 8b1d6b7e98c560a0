// Package iowiki implements record sources for the build pipeline:
// the MediaWiki API client that discovers and downloads every article
// transcluding the infobox template, and a local JSON dump reader for
// offline builds. This is an impure I/O package.
package iowiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"

	"github.com/reinderien/mycota/pkg/config"
	"github.com/reinderien/mycota/pkg/mycota"
	"github.com/reinderien/mycota/pkg/schema"
)

// articleNamespace restricts transclusion listing to real articles,
// excluding talk and project pages.
const articleNamespace = "0"

// wikiSource fetches pages from a MediaWiki API.
type wikiSource struct {
	cfg    *config.Config
	client *http.Client
}

// New creates a MediaWiki record source.
func New(cfg *config.Config) mycota.Source {
	return &wikiSource{
		cfg: cfg,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Pages lists every article transcluding the configured template, then
// downloads their wikitext in batches and streams them to ch.
func (w *wikiSource) Pages(
	ctx context.Context,
	ch chan<- schema.Page,
) error {
	gn.Info("Listing articles transcluding <em>Template:%s</em>...",
		w.cfg.Wiki.Template)

	ids, err := w.transclusions(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return NoTransclusionsError(w.cfg.Wiki.Template)
	}

	slog.Info("Listed transcluding articles",
		"template", w.cfg.Wiki.Template,
		"count", len(ids),
	)
	gn.Message("<em>Found %s articles</em>", humanize.Comma(int64(len(ids))))

	bar := pb.Full.Start(len(ids))
	bar.Set("prefix", "Fetching articles: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	chunk := w.cfg.Wiki.PageChunk
	for start := 0; start < len(ids); start += chunk {
		end := min(start+chunk, len(ids))

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := w.revisions(ctx, ids[start:end], ch); err != nil {
			return err
		}
		bar.Add(end - start)
	}

	return nil
}

// transclusions pages through the transcludedin listing, collecting
// article ids in API order.
func (w *wikiSource) transclusions(ctx context.Context) ([]int64, error) {
	params := url.Values{
		"format":        {"json"},
		"formatversion": {"2"},
		"action":        {"query"},
		"titles":        {"Template:" + w.cfg.Wiki.Template},
		"prop":          {"transcludedin"},
		"tiprop":        {"pageid"},
		"tinamespace":   {articleNamespace},
		"tishow":        {"!redirect"},
		"tilimit":       {strconv.Itoa(w.cfg.Wiki.ListChunk)},
	}

	var ids []int64
	cont := url.Values{}

	for chunk := 1; ; chunk++ {
		doc, err := w.query(ctx, merge(params, cont))
		if err != nil {
			return nil, err
		}

		for _, page := range doc.Query.Pages {
			for _, t := range page.TranscludedIn {
				ids = append(ids, t.PageID)
			}
		}
		slog.Debug("Transclusion list chunk",
			"chunk", chunk, "total", len(ids))

		if doc.BatchComplete || len(doc.Continue) == 0 {
			return ids, nil
		}
		cont = continueValues(doc.Continue)
	}
}

// revisions fetches the current wikitext for one batch of page ids and
// streams the resulting pages.
func (w *wikiSource) revisions(
	ctx context.Context,
	ids []int64,
	ch chan<- schema.Page,
) error {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.FormatInt(id, 10)
	}

	params := url.Values{
		"format":        {"json"},
		"formatversion": {"2"},
		"action":        {"query"},
		"prop":          {"revisions"},
		"rvprop":        {"content"},
		"rvslots":       {"main"},
		"pageids":       {strings.Join(strs, "|")},
	}

	doc, err := w.query(ctx, params)
	if err != nil {
		return err
	}

	for _, page := range doc.Query.Pages {
		if page.Missing || len(page.Revisions) == 0 {
			slog.Warn("Page without content", "pageid", page.PageID)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- schema.Page{
			PageID: page.PageID,
			Title:  page.Title,
			Text:   page.Revisions[0].Slots.Main.Content,
		}:
		}
	}

	return nil
}

// query performs one API round trip and decodes the response envelope.
func (w *wikiSource) query(
	ctx context.Context,
	params url.Values,
) (*apiResponse, error) {
	reqURL := w.cfg.Wiki.APIURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, RequestError(w.cfg.Wiki.APIURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, RequestError(w.cfg.Wiki.APIURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ResponseError(w.cfg.Wiki.APIURL,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ResponseError(w.cfg.Wiki.APIURL, err)
	}

	var doc apiResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, ResponseError(w.cfg.Wiki.APIURL, err)
	}

	if len(doc.Warnings) > 0 {
		slog.Warn("API warnings", "warnings", string(doc.Warnings))
	}

	return &doc, nil
}

// merge overlays continuation values on the base query parameters.
func merge(base, cont url.Values) url.Values {
	res := url.Values{}
	for k, v := range base {
		res[k] = v
	}
	for k, v := range cont {
		res[k] = v
	}
	return res
}

// continueValues converts the API's continue object to query
// parameters. Values are strings or numbers depending on the module;
// JSON numbers decode as float64 and must not round-trip through
// scientific notation.
func continueValues(cont map[string]any) url.Values {
	res := url.Values{}
	for k, v := range cont {
		switch n := v.(type) {
		case float64:
			res.Set(k, strconv.FormatFloat(n, 'f', -1, 64))
		default:
			res.Set(k, fmt.Sprint(v))
		}
	}
	return res
}

// apiResponse is the subset of the MediaWiki query envelope this
// client reads (formatversion 2).
type apiResponse struct {
	BatchComplete bool            `json:"batchcomplete"`
	Continue      map[string]any  `json:"continue"`
	Warnings      json.RawMessage `json:"warnings"`
	Query         struct {
		Pages []apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	PageID        int64  `json:"pageid"`
	Title         string `json:"title"`
	Missing       bool   `json:"missing"`
	TranscludedIn []struct {
		PageID int64 `json:"pageid"`
	} `json:"transcludedin"`
	Revisions []struct {
		Slots struct {
			Main struct {
				Content string `json:"content"`
			} `json:"main"`
		} `json:"slots"`
	} `json:"revisions"`
}
