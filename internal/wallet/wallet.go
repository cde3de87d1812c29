package wallet

import (
	"errors"
	"strings"
)

// ChainFamily 链家族
type ChainFamily string

const (
	FamilyEVM    ChainFamily = "evm"
	FamilySolana ChainFamily = "solana"
)

// Identity 已解析的钱包身份
type Identity struct {
	Address string      // 规范化后的地址
	Chain   string      // 调用方传入的链名
	Family  ChainFamily // 链家族
}

// Resolver 单个链家族的身份解析能力
type Resolver interface {
	// Family 返回链家族
	Family() ChainFamily
	// Resolve 校验并规范化地址
	Resolve(address string) (string, error)
}

var ErrUnknownChain = errors.New("unknown chain")

// evm链名 -> 家族映射
var chainFamilies = map[string]ChainFamily{
	"ethereum": FamilyEVM,
	"bsc":      FamilyEVM,
	"polygon":  FamilyEVM,
	"base":     FamilyEVM,
	"arbitrum": FamilyEVM,
	"solana":   FamilySolana,
}

var resolvers = map[ChainFamily]Resolver{
	FamilyEVM:    &EVMResolver{},
	FamilySolana: &SolanaResolver{},
}

// Resolve 根据链名选择解析器并解析钱包地址
func Resolve(chain, address string) (*Identity, error) {
	family, ok := chainFamilies[strings.ToLower(chain)]
	if !ok {
		return nil, ErrUnknownChain
	}

	resolver := resolvers[family]
	normalized, err := resolver.Resolve(address)
	if err != nil {
		return nil, err
	}

	return &Identity{
		Address: normalized,
		Chain:   strings.ToLower(chain),
		Family:  family,
	}, nil
}
