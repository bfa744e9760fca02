package common

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlDeadlockErr        = 1213
	mysqlLockWaitTimeoutErr = 1205
)

// IsRetryableDBError reports whether the error is a transient serialization
// or lock conflict. Such errors map to the ConflictRetry code: the caller
// may retry once; every other database error is terminal.
func IsRetryableDBError(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDeadlockErr || mysqlErr.Number == mysqlLockWaitTimeoutErr
	}

	// Sqlite reports writer contention as SQLITE_BUSY / SQLITE_LOCKED.
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
