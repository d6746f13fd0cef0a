// Package pageobject drives the application over HTTP the way a UI test
// would: pages are located by data-testid and forms are submitted with the
// values a user would type.
package pageobject

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ErrElementNotFound is returned when no element carries the requested test ID.
var ErrElementNotFound = errors.New("element not found")

// Browser is a cookie-keeping HTTP client that remembers the last page it loaded.
type Browser struct {
	client  *http.Client
	base    *url.URL
	doc     *html.Node
	status  int
	current *url.URL
}

// NewBrowser returns a Browser rooted at baseURL with an empty cookie jar.
func NewBrowser(baseURL string) (*Browser, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Browser{
		client: &http.Client{Jar: jar},
		base:   base,
	}, nil
}

// Visit loads path with a GET request, following redirects.
func (b *Browser) Visit(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.resolve(path), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return b.do(req)
}

// Submit posts form to path as a URL-encoded body, following redirects.
func (b *Browser) Submit(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.resolve(path), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *Browser) do(req *http.Request) error {
	req.Header.Set("Accept", "text/html")
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	b.doc = doc
	b.status = resp.StatusCode
	b.current = resp.Request.URL
	return nil
}

func (b *Browser) resolve(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return b.base.String() + path
	}
	return b.base.ResolveReference(ref).String()
}

// Path returns the path of the last loaded page after redirects.
func (b *Browser) Path() string {
	if b.current == nil {
		return ""
	}
	return b.current.Path
}

// Status returns the status code of the last loaded page.
func (b *Browser) Status() int { return b.status }

// Exists reports whether an element with testID is on the current page.
func (b *Browser) Exists(testID string) bool {
	_, err := b.Find(testID)
	return err == nil
}

// Find returns the first element with the given data-testid.
func (b *Browser) Find(testID string) (*html.Node, error) {
	var found *html.Node
	walk(b.doc, func(n *html.Node) bool {
		if attr(n, "data-testid") == testID {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, testID)
	}
	return found, nil
}

// FindAllWithPrefix returns every element whose data-testid starts with prefix, in document order.
func (b *Browser) FindAllWithPrefix(prefix string) []*html.Node {
	var nodes []*html.Node
	walk(b.doc, func(n *html.Node) bool {
		if id := attr(n, "data-testid"); id != "" && strings.HasPrefix(id, prefix) {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Text returns the trimmed text content of the element with testID.
func (b *Browser) Text(testID string) (string, error) {
	n, err := b.Find(testID)
	if err != nil {
		return "", err
	}
	return textContent(n), nil
}

// Cookie returns the value of the named cookie for the base URL.
func (b *Browser) Cookie(name string) string {
	for _, c := range b.client.Jar.Cookies(b.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if n.Type == html.ElementNode && !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
