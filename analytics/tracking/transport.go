// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"context"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/screens/log"
)

func newHTTPTransport(timeout stdlibtime.Duration) *httpTransport {
	if timeout <= 0 {
		timeout = requestDeadline
	}

	return &httpTransport{
		client: req.C().
			SetJsonMarshal(json.Marshal).
			SetJsonUnmarshal(json.Unmarshal).
			SetTimeout(timeout).
			SetCommonContentType("application/json").
			SetCommonHeader("Accept", "application/json"),
	}
}

// Post sends body once, there are no retries. Every failure is logged and reported as false.
func (t *httpTransport) Post(ctx context.Context, url string, body any) bool {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBodyJsonMarshal(body).
		Post(url)
	if err != nil {
		log.Error(errors.Wrapf(err, "analytics/tracking post `%v` failed, body:%#v", url, body))

		return false
	}
	if !resp.IsSuccessState() {
		respBody, rErr := resp.ToString()
		if rErr != nil {
			log.Error(errors.Wrapf(rErr, "analytics/tracking post `%v` failed, body:%#v, unable to read response body", url, body))
		}
		log.Error(errors.Errorf("analytics/tracking post `%v` failed, body:%#v, statusCode:%v, response: %v", url, body, resp.GetStatusCode(), respBody))

		return false
	}

	return true
}
