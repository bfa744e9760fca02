package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/raidpot-lab/backend/config"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/logger"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler and may derive a new context, e.g.
// to attach the authenticated user id.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	mux     *http.ServeMux
	db      *gorm.DB
	configs config.Configs
	logger  logger.Logger
	befores []MiddlewareFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		db:      db,
		configs: cfg,
		logger:  l,
	}
}

// Branch returns a router sharing the same mux but with its own middleware
// chain, so route groups can require different middlewares.
func (r *Router) Branch() *Router {
	befores := make([]MiddlewareFunc, len(r.befores))
	copy(befores, r.befores)

	return &Router{
		mux:     r.mux,
		db:      r.db,
		configs: r.configs,
		logger:  r.logger,
		befores: befores,
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// RawHandlerFunc writes the http response itself. The websocket proxy needs
// the raw writer to upgrade the connection, so it cannot go through the
// json envelope of wrapHandler.
type RawHandlerFunc func(ctx context.Context, w http.ResponseWriter, req *http.Request)

func (r *Router) Raw(pattern string, handler RawHandlerFunc) {
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithConfigs(ctx, r.configs)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithHTTPRequest(ctx, req)

		var err error
		for _, m := range r.befores {
			if ctx, err = m(ctx); err != nil {
				writeError(w, err)
				return
			}
		}

		handler(ctx, w, req)
	})
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := req.Context()
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithConfigs(ctx, r.configs)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithHTTPRequest(ctx, req)

		var err error
		for _, m := range r.befores {
			if ctx, err = m(ctx); err != nil {
				writeError(w, err)
				return
			}
		}

		request := new(Request)
		if err := decodeRequest(req, method, request); err != nil {
			writeError(w, errorx.New(errorx.BadRequest, "Cannot decode request"))
			return
		}

		resp, err := handler(ctx, request)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, response{Data: resp})
	}
}

func decodeRequest(req *http.Request, method string, request any) error {
	if method == http.MethodGet {
		// Query parameters are decoded through a string map; every GET
		// request in this service carries string fields only.
		params := map[string]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		b, err := json.Marshal(params)
		if err != nil {
			return err
		}

		return json.Unmarshal(b, request)
	}

	if req.Body == nil {
		return nil
	}

	if err := json.NewDecoder(req.Body).Decode(request); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

type response struct {
	Code     int            `json:"code"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Data     any            `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	writeJSON(w, response{
		Code:     int(errx.Code),
		Error:    errx.Message,
		Metadata: errx.Metadata,
	})
}

func writeJSON(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
