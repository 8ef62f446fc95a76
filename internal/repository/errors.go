// Package repository holds the SQL access layer. Every exported method
// returns errors already classified into the kinds defined in package
// model, so callers can branch with errors.Is without knowing the driver.
package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// Classify wraps a driver error with op and its kind. Errors that already
// carry a kind are returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var me *model.Error
	if errors.As(err, &me) {
		return err
	}
	return model.Wrap(op, kindOf(err), err)
}

func kindOf(err error) error {
	var myErr *mysql.MySQLError
	var netErr net.Error
	switch {
	case errors.As(err, &myErr):
		// the server answered, so the statement itself was rejected
		return model.ErrQuery
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &netErr):
		return model.ErrConnectivity
	}
	return model.ErrQuery
}

// IsDuplicate reports whether err is a MySQL unique key violation (1062).
func IsDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
