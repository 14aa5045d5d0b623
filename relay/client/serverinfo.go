package client

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// Info is what the relay's home page reports about itself.
type Info struct {
	// Version is the connector version.
	Version string

	// Problem is non-empty when the relay is up but its automation backend
	// is not usable.
	Problem string
}

// Healthy reports whether the relay's backend is ready for operations.
func (i Info) Healthy() bool {
	return i.Problem == ""
}

// ServerInfo fetches and parses the relay's home page.
func (c *Client) ServerInfo() (Info, error) {
	resp, err := c.httpc.Get(c.baseURL + "/")
	if err != nil {
		return Info{}, fmt.Errorf("relay home page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("relay home page: HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return Info{}, fmt.Errorf("relay home page: parsing HTML: %w", err)
	}
	return parseInfo(doc), nil
}

func parseInfo(doc *html.Node) Info {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	text := b.String()

	var info Info
	if _, after, found := strings.Cut(text, "ver. "); found {
		if fields := strings.Fields(after); len(fields) > 0 {
			info.Version = fields[0]
		}
	}
	if _, after, found := strings.Cut(text, "NB! "); found {
		info.Problem = strings.TrimSpace(after)
	}
	return info
}
