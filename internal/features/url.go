package features

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/happyhackingspace/maxent/sparse"
)

func addURL(v sparse.Vector[string], rawURL string) {
	v.Add(prefixDomain+Domain(rawURL), 1)
	for _, tok := range Tokenize(strings.ToLower(urlPath(rawURL))) {
		v.Add(prefixPath+tok, 1)
	}
}

// Domain returns the registrable domain name of a URL without its public
// suffix, e.g. "example" for "https://foo.example.co.uk/path".
func Domain(rawURL string) string {
	host := rawURL
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	host = strings.ToLower(host)

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	if idx := strings.Index(domain, "."); idx >= 0 {
		return domain[:idx]
	}
	return domain
}

func urlPath(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}
