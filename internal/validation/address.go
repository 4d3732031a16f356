package validation

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAddress = errors.New("invalid ethereum address")

// NormalizeAddress validates a hex Ethereum address and returns it
// lowercased. All address lookups and storage use the lowercased form so
// that checksummed and lowercase client input hit the same row.
func NormalizeAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}
