package deletion

import (
	"time"

	"sjfs/internal/models"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// totpSkew allows codes from ±2 time-steps around now.
const totpSkew = 2

// verifyTwoFactor checks the supplied token against the user's TOTP secret,
// falling back to the stored backup codes. When a backup code matches it is
// consumed: the second return value holds the remaining codes and the third
// reports that the list changed.
func verifyTwoFactor(user *models.User, token string) (ok bool, remaining []string, consumed bool) {
	if token == "" {
		return false, nil, false
	}

	if user.TwoFactorSecret != "" {
		valid, err := totp.ValidateCustom(token, user.TwoFactorSecret, time.Now(), totp.ValidateOpts{
			Period:    30,
			Skew:      totpSkew,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		if err == nil && valid {
			return true, nil, false
		}
	}

	for i, code := range user.BackupCodes {
		if code == token {
			remaining = make([]string, 0, len(user.BackupCodes)-1)
			remaining = append(remaining, user.BackupCodes[:i]...)
			remaining = append(remaining, user.BackupCodes[i+1:]...)
			return true, remaining, true
		}
	}

	return false, nil, false
}
