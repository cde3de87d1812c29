package wallet

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// SolanaResolver Solana钱包地址解析器
type SolanaResolver struct{}

var ErrInvalidSolanaAddress = errors.New("invalid solana address")

// Family 返回链家族
func (r *SolanaResolver) Family() ChainFamily {
	return FamilySolana
}

// Resolve 校验base58公钥，Solana地址大小写敏感，保持原样
func (r *SolanaResolver) Resolve(address string) (string, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return "", ErrInvalidSolanaAddress
	}
	return key.String(), nil
}
