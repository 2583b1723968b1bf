package network

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/html"
)

// Resource is content read from a file or fetched over HTTP.
type Resource struct {
	// Location is where the content came from: a URL after redirects, a
	// file path, or "" for stdin. Relative references resolve against it.
	Location    string
	Content     []byte
	ContentType string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) LoaderOption {
	return func(l *Loader) {
		l.stdin = r
	}
}

// Loader reads documents and the stylesheets they link.
type Loader struct {
	client *Client
	stdin  io.Reader
	logger *zap.Logger
}

// NewLoader creates a loader fetching remote resources with client. A nil
// logger disables logging.
func NewLoader(client *Client, logger *zap.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{
		client: client,
		stdin:  os.Stdin,
		logger: logger.Named("network"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveReference resolves ref against the location of the resource that
// contains it. Remote bases use URL resolution; local bases resolve against
// the directory of the file.
func ResolveReference(base, ref string) (string, error) {
	if IsRemote(ref) {
		return ref, nil
	}
	if IsRemote(base) {
		b, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("invalid base URL %q: %w", base, err)
		}
		r, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("invalid reference %q: %w", ref, err)
		}
		return b.ResolveReference(r).String(), nil
	}
	if path, ok := strings.CutPrefix(ref, "file://"); ok {
		return path, nil
	}
	if filepath.IsAbs(ref) || base == "" {
		return ref, nil
	}
	return filepath.Join(filepath.Dir(base), ref), nil
}

// Load reads location: "-" for stdin, an http(s) URL, or a file path.
func (l *Loader) Load(ctx context.Context, location string) (*Resource, error) {
	switch {
	case location == "-":
		content, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &Resource{Content: content}, nil

	case IsRemote(location):
		resp, err := l.client.Get(ctx, location)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("fetched", zap.String("url", resp.URL.String()), zap.Int("bytes", len(resp.Body)))
		return &Resource{Location: resp.URL.String(), Content: resp.Body, ContentType: resp.ContentType}, nil
	}

	path := strings.TrimPrefix(location, "file://")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return &Resource{
		Location:    path,
		Content:     content,
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

// LoadDocument loads and parses the HTML document at location.
func (l *Loader) LoadDocument(ctx context.Context, location string) (*dom.Document, *Resource, error) {
	res, err := l.Load(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	if IsRemote(location) && !IsHTMLContentType(res.ContentType) {
		return nil, nil, fmt.Errorf("%s is not an HTML document (%s)", location, res.ContentType)
	}
	doc, err := html.ParseReader(bytes.NewReader(res.Content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	return doc, res, nil
}

// LinkedStylesheets loads the <link rel="stylesheet"> sheets of doc in tree
// order. base is the document's location. Sheets that fail to load are
// logged and skipped.
func (l *Loader) LinkedStylesheets(ctx context.Context, doc *dom.Document, base string) []*css.Stylesheet {
	var sheets []*css.Stylesheet
	for _, link := range doc.GetElementsByTagName("link") {
		href := strings.TrimSpace(link.GetAttribute("href"))
		if href == "" || !hasToken(link.GetAttribute("rel"), "stylesheet") {
			continue
		}
		location, err := ResolveReference(base, href)
		if err != nil {
			l.logger.Warn("skipping stylesheet", zap.String("href", href), zap.Error(err))
			continue
		}
		res, err := l.Load(ctx, location)
		if err != nil {
			l.logger.Warn("skipping stylesheet", zap.String("href", location), zap.Error(err))
			continue
		}
		if IsRemote(location) && !IsCSSContentType(res.ContentType) {
			l.logger.Warn("skipping stylesheet with wrong content type",
				zap.String("href", location), zap.String("content_type", res.ContentType))
			continue
		}
		sheets = append(sheets, css.ParseStylesheet(string(res.Content)))
	}
	return sheets
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
