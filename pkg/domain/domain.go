package domain

import (
	"errors"
	"net/url"
	"path"
	"strings"
)

// ResolveURL resolves ref against the page URL base, like a browser would for an src attribute
func ResolveURL(base, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", errors.New("empty reference")
	}
	baseUrl, err := url.Parse(base)
	if err != nil {
		return "", errors.New("error parsing base URL")
	}
	refUrl, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", errors.New("error parsing reference URL")
	}
	return baseUrl.ResolveReference(refUrl).String(), nil
}

// FileName returns the last path segment of a URL, ignoring query and fragment
func FileName(u string) (string, error) {
	parsedUrl, err := url.Parse(u)
	if err != nil {
		return "", errors.New("error parsing URL")
	}
	name := path.Base(parsedUrl.Path)
	if name == "" || name == "." || name == "/" {
		return "", errors.New("URL has no file name")
	}
	return name, nil
}
