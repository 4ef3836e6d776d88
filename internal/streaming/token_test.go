// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package streaming

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildToken(t *testing.T) {
	got := buildToken("abcdef", 1700000000000, 3)

	// start 003 -> QQS, length 13 -> BS, timestamp 1700000000000 -> BX + 11 Q
	assert.Equal(t, "QQS"+"BS"+"abc"+"BX"+strings.Repeat("Q", 11)+"def", got)
}

func TestBuildToken_ClampsStart(t *testing.T) {
	got := buildToken("a", 5, 2)
	assert.Equal(t, "QQB"+"QB"+"a"+"H", got)
}

func TestNewToken_TrimsPadding(t *testing.T) {
	token := newToken("c2VjcmV0==", 1700000000000)

	assert.NotContains(t, token, "=")
	assert.Contains(t, token, "BX"+strings.Repeat("Q", 11))
	assert.Len(t, token, 3+2+len("c2VjcmV0")+13)
}

func TestEncodeNumber(t *testing.T) {
	assert.Equal(t, "QQQ", encodeNumber(0, 3))
	assert.Equal(t, "BWS", encodeNumber(123, 3))
	assert.Equal(t, "WS", encodeNumber(123, 2))
	assert.Equal(t, "PHDXZU", encodeDigits("456789"))
}

func TestStreamingURL(t *testing.T) {
	base, err := url.Parse("wss://featbit.example.com/gateway/")
	require.NoError(t, err)

	raw := streamingURL(base, "secret", time.UnixMilli(1700000000000))
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "wss", u.Scheme)
	assert.Equal(t, "/gateway/streaming", u.Path)
	assert.Equal(t, "server", u.Query().Get("type"))
	assert.NotEmpty(t, u.Query().Get("token"))
	assert.Equal(t, "/gateway/", base.Path)
}
