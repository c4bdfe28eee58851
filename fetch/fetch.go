package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is one discovered PDF link.
type Link struct {
	// URL is the absolute link target
	URL string

	// Text is the anchor's visible text, trimmed
	Text string
}

// programmeHints are substrings (lower case) marking a link as the match
// programme rather than some other club PDF.
var programmeHints = []string{"otteluohjelma", "ohjelma", "schedule", "programme"}

// PDFLinks parses HTML and returns all anchors whose target is a PDF
// file, resolved against base. Anchors with unparseable targets are
// skipped; an unparseable base is an error.
func PDFLinks(r io.Reader, base string) ([]Link, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if link, ok := anchorPDFLink(n, baseURL); ok {
				links = append(links, link)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return links, nil
}

// anchorPDFLink extracts a PDF link from an anchor node.
func anchorPDFLink(n *html.Node, base *url.URL) (Link, bool) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = attr.Val
			break
		}
	}
	if href == "" {
		return Link{}, false
	}
	target, err := base.Parse(href)
	if err != nil {
		return Link{}, false
	}
	if !strings.HasSuffix(strings.ToLower(target.Path), ".pdf") {
		return Link{}, false
	}
	return Link{URL: target.String(), Text: anchorText(n)}, true
}

// anchorText collects the anchor's visible text.
func anchorText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// FindProgramme picks the most likely match-programme link: the first
// link whose text or URL contains a programme hint, else the first link.
func FindProgramme(links []Link) (Link, bool) {
	if len(links) == 0 {
		return Link{}, false
	}
	for _, link := range links {
		haystack := strings.ToLower(link.Text + " " + link.URL)
		for _, hint := range programmeHints {
			if strings.Contains(haystack, hint) {
				return link, true
			}
		}
	}
	return links[0], true
}

// Download fetches a URL and returns the response body. A nil client uses
// http.DefaultClient. Non-2xx responses are errors.
func Download(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return data, nil
}

// Programme fetches a schedule page, finds the programme PDF link on it
// and downloads the PDF. It returns the PDF bytes and the resolved URL.
func Programme(ctx context.Context, client *http.Client, pageURL string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	page, err := Download(ctx, client, pageURL)
	if err != nil {
		return nil, "", err
	}
	links, err := PDFLinks(strings.NewReader(string(page)), pageURL)
	if err != nil {
		return nil, "", err
	}
	link, ok := FindProgramme(links)
	if !ok {
		return nil, "", fmt.Errorf("no PDF links on %s", pageURL)
	}
	data, err := Download(ctx, client, link.URL)
	if err != nil {
		return nil, "", err
	}
	return data, link.URL, nil
}
