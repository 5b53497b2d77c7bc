// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Fetch builds and performs a GET request to a given URL, with
// optional extra headers.
func Fetch(ctx context.Context, client *http.Client, src string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	for k, values := range header {
		req.Header[k] = values
	}

	return client.Do(req)
}

// UnshortenURL follows redirects with a HEAD request and returns the
// final destination URL. Useful for the short URLs used on social
// media; the response body is never downloaded.
func UnshortenURL(ctx context.Context, client *http.Client, src string, header http.Header) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, src, nil)
	if err != nil {
		return "", err
	}
	for k, values := range header {
		req.Header[k] = values
	}

	rsp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close() //nolint:errcheck

	return rsp.Request.URL.String(), nil
}

// TrimURL removes the query string, including UTM and referral tags,
// and the fragment from a URL.
func TrimURL(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// PrepareURL readies a URL for content extraction, optionally
// resolving redirects and trimming the query string.
func PrepareURL(ctx context.Context, client *http.Client, src string, unshorten, trim bool, header http.Header) (string, error) {
	var err error
	if unshorten {
		if src, err = UnshortenURL(ctx, client, src, header); err != nil {
			return "", err
		}
	}
	if trim {
		src = TrimURL(src)
	}
	return src, nil
}

// DownloadMedia downloads the file at src and saves it to filename.
// When filename is empty, it is derived from the URL path with an
// extension matching the detected content type.
// It returns the name of the written file.
func DownloadMedia(ctx context.Context, client *http.Client, src, filename string) (string, error) {
	rsp, err := Fetch(ctx, client, src, nil)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close() //nolint:errcheck

	if rsp.StatusCode/100 != 2 {
		return "", fmt.Errorf("invalid status %d for %s", rsp.StatusCode, src)
	}

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return "", err
	}

	if filename == "" {
		base := path.Base(rsp.Request.URL.Path)
		name := strings.TrimSuffix(base, path.Ext(base))
		if name == "" || name == "." || name == "/" {
			name = "media"
		}
		filename = name + mimetype.Detect(data).Extension()
	}

	if err = os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}

	return filename, nil
}
