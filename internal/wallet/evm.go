package wallet

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EVMResolver EVM系钱包地址解析器
type EVMResolver struct{}

var ErrInvalidEVMAddress = errors.New("invalid evm address")

// Family 返回链家族
func (r *EVMResolver) Family() ChainFamily {
	return FamilyEVM
}

// Resolve 校验十六进制地址并统一转为小写
func (r *EVMResolver) Resolve(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrInvalidEVMAddress
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}
