package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOTP returns a login/signup code in [100000, 999999].
func GenerateOTP() (int, error) {
	return randomInRange(100000, 999999)
}

// GenerateVendorID returns a vendor code of the form "V" followed by ten
// digits.
func GenerateVendorID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10_000_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("V%010d", n.Int64()), nil
}

// GenerateTwoFactorCode returns a two-factor code in [1000, 9999].
func GenerateTwoFactorCode() (int, error) {
	return randomInRange(1000, 9999)
}

// OtpExpiry returns the expiry instant for a code issued now.
func OtpExpiry(validFor time.Duration) time.Time {
	return time.Now().Add(validFor)
}

func randomInRange(min, max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		return 0, err
	}
	return min + int(n.Int64()), nil
}
