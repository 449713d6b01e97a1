package service

import (
	"context"
	"errors"

	"github.com/storefront-labs/storefront/internal/upstream"
	"github.com/storefront-labs/storefront/pkg/util"
)

// loginRequired is the notice shown when an action needs a signed-in user.
const loginRequired = "login required"

// upstreamError translates collaborator failures into domain errors.
// resource names what was being fetched for NOT_FOUND messages.
func upstreamError(err error, resource, failure string) error {
	if err == nil {
		return nil
	}
	var domainErr *util.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var statusErr *upstream.StatusError
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		return util.NewNotFound(resource, nil)
	case errors.Is(err, upstream.ErrUnauthorized):
		return util.NewUnauthorized(loginRequired)
	case errors.Is(err, upstream.ErrForbidden):
		return util.NewForbidden("not allowed")
	case errors.Is(err, context.DeadlineExceeded):
		return util.NewBadGateway(failure+": timed out", err)
	case errors.As(err, &statusErr) && statusErr.Message != "":
		return util.NewBadGateway(statusErr.Message, err)
	default:
		return util.NewBadGateway(failure, err)
	}
}
