package deletion

import "errors"

var (
	ErrForbidden             = errors.New("not allowed to delete this merchant")
	ErrOwnMerchant           = errors.New("platform admins cannot delete their own merchant")
	ErrPasswordRequired      = errors.New("password is required")
	ErrInvalidPassword       = errors.New("password is incorrect")
	ErrAdminPasswordRequired = errors.New("admin password is required")
	ErrTwoFactorRequired     = errors.New("a two-factor token or backup code is required")
	ErrInvalidTwoFactor      = errors.New("two-factor token is invalid")
	ErrOutstandingDebt       = errors.New("merchant has outstanding billing records")
	ErrRecentSubscription    = errors.New("an active subscription was updated within the last 24 hours")
)
