package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Hint turns a connection failure into an operator-facing suggestion.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())

	var cmdErr mongo.CommandError
	switch {
	case errors.As(err, &cmdErr) && cmdErr.Code == 18,
		strings.Contains(msg, "authentication failed"),
		strings.Contains(msg, "auth error"):
		return "authentication failed: check the username and password in MONGODB_URI and the database user's permissions"
	case strings.Contains(msg, "no such host"),
		strings.Contains(msg, "lookup "),
		strings.Contains(msg, "connection refused"):
		return "host unreachable: check the cluster hostname in MONGODB_URI and your network connection"
	case errors.Is(err, context.DeadlineExceeded),
		mongo.IsTimeout(err),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "server selection"):
		return "connection timed out: check that your IP address is on the cluster's access list"
	default:
		return "unexpected error: verify MONGODB_URI and that the server is running"
	}
}
