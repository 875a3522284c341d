package httpapi

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Policy is what an endpoint does with a failed call.
type Policy int

const (
	// PolicyRethrow logs and returns the endpoint's fixed error.
	PolicyRethrow Policy = iota + 1
	// PolicySwallow logs and returns an empty collection with no error.
	PolicySwallow
	// PolicyPropagate returns the *APIError as produced.
	PolicyPropagate
)

func (p Policy) String() string {
	switch p {
	case PolicyRethrow:
		return "rethrow"
	case PolicySwallow:
		return "swallow"
	case PolicyPropagate:
		return "propagate"
	default:
		return "unknown"
	}
}

// settle applies the endpoint policy to a failed call. empty is what a
// swallowing endpoint hands back.
func settle[T any](c *Client, ep Endpoint, err error, empty T) (T, error) {
	fields := logrus.Fields{"endpoint": ep.Name, "policy": ep.Policy.String()}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		fields["method"] = apiErr.Method
		fields["url"] = apiErr.URL
		fields["kind"] = apiErr.Kind.String()
		if apiErr.Status != 0 {
			fields["status"] = apiErr.Status
		}
	}
	entry := c.logger.WithError(err).WithFields(fields)

	policy := ep.Policy
	if c.strict {
		policy = PolicyPropagate
	}

	var zero T
	switch policy {
	case PolicyRethrow:
		entry.Error(ep.Err.Error())
		return zero, ep.Err
	case PolicySwallow:
		entry.Warn("request failed, returning empty result")
		return empty, nil
	default:
		entry.Debug("request failed")
		return zero, err
	}
}
