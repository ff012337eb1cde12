package constellation

import (
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// A DAG address is "DAG", one check digit, then the last 36 characters of
// the base58-encoded public key hash. The check digit is the sum of the
// numeric characters in that tail, mod 9.
const (
	addressPrefix = "DAG"
	addressLength = 40
)

func ValidAddress(address string) bool {
	return ValidateAddress(address) == nil
}

func ValidateAddress(address string) (err error) {
	if len(address) != addressLength || !strings.HasPrefix(address, addressPrefix) {
		return errors.Wrapf(ErrInvalidAddress, "'%s'", address)
	}

	check := address[3]
	if check < '0' || check > '9' {
		return errors.Wrapf(ErrInvalidAddress, "'%s': check digit '%c'", address, check)
	}

	tail := address[4:]
	if _, err2 := base58.Decode(tail); err2 != nil {
		return errors.Wrapf(ErrInvalidAddress, "'%s': %v", address, err2)
	}

	sum := 0
	for i := 0; i < len(tail); i++ {
		if tail[i] >= '0' && tail[i] <= '9' {
			sum += int(tail[i] - '0')
		}
	}

	if sum%9 != int(check-'0') {
		return errors.Wrapf(ErrInvalidAddress, "'%s': check digit mismatch", address)
	}

	return
}
