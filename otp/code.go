package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultCodeLength matches the six digit codes the registration flow has
// always mailed out.
const DefaultCodeLength = 6

// GenerateCode returns a uniform random numeric code of the given width,
// zero-padded. Widths below DefaultCodeLength are rounded up to it. The code
// comes from crypto/rand so it cannot be predicted from earlier codes.
func GenerateCode(width int) (string, error) {
	if width < DefaultCodeLength {
		width = DefaultCodeLength
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(width)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", width, n), nil
}
