package xcontext

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/raidpot-lab/backend/config"
	"github.com/raidpot-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey          struct{}
	txKey          struct{}
	loggerKey      struct{}
	configsKey     struct{}
	httpRequestKey struct{}
	userIDKey      struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database handle carried by the context. If a transaction
// was opened with WithDBTransaction and is still in flight, the transaction
// is returned instead, so repositories transparently join it.
func DB(ctx context.Context) *gorm.DB {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && !state.done {
		return state.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type txState struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a database transaction and stores it in the
// returned context. Money-moving operations run under SERIALIZABLE
// isolation; sqlite already serializes every writer, so the explicit level
// is only requested from mysql.
func WithDBTransaction(ctx context.Context) context.Context {
	db := DB(ctx).WithContext(ctx)

	var tx *gorm.DB
	if db.Dialector.Name() == "mysql" {
		tx = db.Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	} else {
		tx = db.Begin()
	}

	return context.WithValue(ctx, txKey{}, &txState{tx: tx})
}

// WithCommitDBTransaction commits the in-flight transaction. The commit
// error is returned to the caller because serialization conflicts surface
// here and must be distinguishable from terminal failures.
func WithCommitDBTransaction(ctx context.Context) error {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok || state.done {
		return nil
	}

	state.done = true
	return state.tx.Commit().Error
}

// WithRollbackDBTransaction rolls back the in-flight transaction. It is a
// no-op after a commit, so it is safe to defer unconditionally.
func WithRollbackDBTransaction(ctx context.Context) {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok || state.done {
		return
	}

	state.done = true
	state.tx.Rollback()
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}
