package links

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elearnhq/termclass/internal/common"
)

func TestParseEmailLink(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    EmailLink
		wantErr bool
	}{
		{
			name: "activation link",
			raw:  "https://app.example.com/activate/MQ/abc-123",
			want: EmailLink{Kind: KindActivation, UID: "MQ", Token: "abc-123"},
		},
		{
			name: "activation spelled out",
			raw:  "https://app.example.com/auth/activation/MTc/tok",
			want: EmailLink{Kind: KindActivation, UID: "MTc", Token: "tok"},
		},
		{
			name: "reset confirm link",
			raw:  "https://app.example.com/password/reset/confirm/MQ/def-456",
			want: EmailLink{Kind: KindReset, UID: "MQ", Token: "def-456"},
		},
		{
			name: "uid and token kept verbatim",
			raw:  "https://app.example.com/activate/uRl%3AenC0ded/T-0_k.e~n",
			want: EmailLink{Kind: KindActivation, UID: "uRl:enC0ded", Token: "T-0_k.e~n"},
		},
		{name: "too few segments", raw: "https://app.example.com/activate/MQ", wantErr: true},
		{name: "unknown marker", raw: "https://app.example.com/welcome/MQ/tok", wantErr: true},
		{name: "garbage", raw: "://not-a-url", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEmailLink(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrMalformedLink)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCallback(t *testing.T) {
	cb, err := ParseCallback("http://127.0.0.1:8976/callback?code=c1&state=s1")
	require.NoError(t, err)
	assert.True(t, cb.Exchangeable())
	assert.Equal(t, "c1", cb.Code)
	assert.Equal(t, "s1", cb.State)

	cb, err = ParseCallback("http://127.0.0.1:8976/callback?code=c1")
	require.NoError(t, err)
	assert.False(t, cb.Exchangeable(), "missing state blocks the exchange")

	cb, err = ParseCallback("http://127.0.0.1:8976/callback?code=c1&state=s1&error=access_denied")
	require.NoError(t, err)
	assert.False(t, cb.Exchangeable(), "provider error blocks the exchange")
	assert.Equal(t, "access_denied", cb.ErrParam)
}

func TestCallbackFromQuery(t *testing.T) {
	q := url.Values{"code": {"c"}, "state": {"s"}}
	assert.True(t, CallbackFromQuery(q).Exchangeable())

	assert.False(t, CallbackFromQuery(url.Values{}).Exchangeable())
}
