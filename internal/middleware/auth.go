package middleware

import (
	"context"
	"strings"

	"github.com/raidpot-lab/backend/pkg/authenticator"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/xcontext"
)

// Authenticate verifies the bearer token and attaches the user id to the
// context. Connections from browsers can fall back to the token query
// parameter, which the websocket handshake cannot avoid.
func Authenticate(engine *authenticator.TokenEngine) func(context.Context) (context.Context, error) {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)

		token := ""
		if authorization := req.Header.Get("Authorization"); authorization != "" {
			token = strings.TrimPrefix(authorization, "Bearer ")
		} else {
			token = req.URL.Query().Get("token")
		}

		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Missing access token")
		}

		userID, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, userID), nil
	}
}
