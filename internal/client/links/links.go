// Package links parses URLs the user brings in from outside: the
// activation and password-reset links delivered by email, and the OAuth
// provider callback. The uid/token pairs inside them are opaque identifiers
// taken verbatim; nothing here recomputes or rewrites them.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/elearnhq/termclass/internal/common"
)

// Kind says which flow an emailed link addresses.
type Kind int

const (
	KindActivation Kind = iota + 1
	KindReset
)

// EmailLink is a parsed activation or password-reset link.
type EmailLink struct {
	Kind  Kind
	UID   string
	Token string
}

// ParseEmailLink recognizes links of the forms
//
//	.../activate/{uid}/{token}
//	.../activation/{uid}/{token}
//	.../password/reset/confirm/{uid}/{token}
//
// The uid and token are returned exactly as they appear.
func ParseEmailLink(raw string) (EmailLink, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return EmailLink{}, fmt.Errorf("%w: %v", common.ErrMalformedLink, err)
	}

	segs := splitPath(u.Path)
	if len(segs) < 3 {
		return EmailLink{}, fmt.Errorf("%w: expected .../{uid}/{token}", common.ErrMalformedLink)
	}

	uid, token := segs[len(segs)-2], segs[len(segs)-1]
	marker := segs[len(segs)-3]

	switch marker {
	case "activate", "activation":
		return EmailLink{Kind: KindActivation, UID: uid, Token: token}, nil
	case "confirm":
		return EmailLink{Kind: KindReset, UID: uid, Token: token}, nil
	default:
		return EmailLink{}, fmt.Errorf("%w: unrecognized link %q", common.ErrMalformedLink, u.Path)
	}
}

// Callback is the parsed query string of an OAuth provider redirect.
// ErrParam is the provider's error parameter, verbatim; an empty ErrParam
// with Code and State both present is the only state in which a token
// exchange may proceed.
type Callback struct {
	Code     string
	State    string
	ErrParam string
}

// Exchangeable reports whether the callback carries everything the token
// exchange needs and no provider error.
func (c Callback) Exchangeable() bool {
	return c.ErrParam == "" && c.Code != "" && c.State != ""
}

// ParseCallback reads code, state and error from a callback URL's query
// string. The URL itself only has to parse; missing parameters are a flow
// decision, not a parse error, so they are reported through the struct.
func ParseCallback(raw string) (Callback, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Callback{}, fmt.Errorf("%w: %v", common.ErrMalformedLink, err)
	}
	return CallbackFromQuery(u.Query()), nil
}

// CallbackFromQuery extracts the callback parameters from already-parsed
// query values.
func CallbackFromQuery(q url.Values) Callback {
	return Callback{
		Code:     q.Get("code"),
		State:    q.Get("state"),
		ErrParam: q.Get("error"),
	}
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
