package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	entitlementDomain "github.com/prepdeck/contentguard/internal/entitlement/domain"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	"github.com/prepdeck/contentguard/internal/identity"
)

// deviceActivityWindow bounds how far back a device session still counts as
// active. Stale sessions age out instead of requiring explicit logout.
const deviceActivityWindow = 30 * time.Minute

// oracleUseCase implements Oracle against the catalog, subscription and
// device-session repositories.
type oracleUseCase struct {
	catalog       ContentCatalog
	subscriptions SubscriptionRepository
	devices       DeviceSessionRepository
	deviceLimit   int
}

// CanAccess evaluates content existence, subscription state, and the device
// limit, in that order. The first failing check determines the denial
// reason; free content skips the subscription check entirely.
func (o *oracleUseCase) CanAccess(
	ctx context.Context,
	userID, contentID uuid.UUID,
) (entitlementDomain.Decision, error) {
	premium, err := o.catalog.IsPremium(ctx, contentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return entitlementDomain.Deny(entitlementDomain.ReasonContentNotFound), nil
		}
		return entitlementDomain.Decision{}, err
	}

	if premium {
		status, err := o.subscriptions.GetStatus(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// No subscription record reads as FREE.
				status = identity.SubscriptionFree
			} else {
				return entitlementDomain.Decision{}, err
			}
		}
		if status != identity.SubscriptionActive {
			return entitlementDomain.Deny(entitlementDomain.ReasonSubscriptionRequired), nil
		}
	}

	if o.deviceLimit > 0 {
		since := time.Now().UTC().Add(-deviceActivityWindow)
		active, err := o.devices.CountActive(ctx, userID, since)
		if err != nil {
			return entitlementDomain.Decision{}, err
		}
		if active > o.deviceLimit {
			return entitlementDomain.Deny(entitlementDomain.ReasonDeviceLimitExceeded), nil
		}
	}

	return entitlementDomain.Allow(), nil
}

// NewOracle creates the default entitlement oracle. A deviceLimit of zero
// disables the concurrent-device check.
func NewOracle(
	catalog ContentCatalog,
	subscriptions SubscriptionRepository,
	devices DeviceSessionRepository,
	deviceLimit int,
) Oracle {
	return &oracleUseCase{
		catalog:       catalog,
		subscriptions: subscriptions,
		devices:       devices,
		deviceLimit:   deviceLimit,
	}
}
