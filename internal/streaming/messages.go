// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package streaming

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

const (
	messageTypeDataSync = "data-sync"
	messageTypePing     = "ping"
	messageTypePong     = "pong"

	streamingPath = "/streaming"

	// CloseInvalidSecret is the close code FeatBit uses to reject a token.
	CloseInvalidSecret = 4003
)

type envelope struct {
	MessageType string          `json:"messageType"`
	Data        json.RawMessage `json:"data"`
}

type dataSyncRequest struct {
	Timestamp int64 `json:"timestamp"`
}

func newDataSyncRequest(version int64) ([]byte, error) {
	data, err := json.Marshal(dataSyncRequest{Timestamp: version})
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{MessageType: messageTypeDataSync, Data: data})
}

func newPing() ([]byte, error) {
	return json.Marshal(envelope{MessageType: messageTypePing, Data: json.RawMessage(`{}`)})
}

// streamingURL returns {base}/streaming?type=server&token=<token>.
func streamingURL(base *url.URL, secret string, now time.Time) string {
	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/") + streamingPath
	q := url.Values{}
	q.Set("type", "server")
	q.Set("token", newToken(secret, now.UnixMilli()))
	u.RawQuery = q.Encode()
	return u.String()
}
