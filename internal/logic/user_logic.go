package logic

import (
	"errors"
	"time"

	"github.com/memechain/presale-service/internal/logger"
	"github.com/memechain/presale-service/internal/model"
	"github.com/memechain/presale-service/internal/wallet"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// UserData 用户数据（含交易历史）
type UserData struct {
	WalletAddress     string                   `json:"walletAddress"`
	Chain             string                   `json:"chain"`
	TotalContributed  float64                  `json:"totalContributed"`
	MemeBalance       int64                    `json:"memeBalance"`
	Transactions      []model.TransactionModel `json:"transactions"`
	FirstContribution *time.Time               `json:"firstContribution"`
	LastContribution  *time.Time               `json:"lastContribution"`
}

// metadata只认白名单内的键，其余一律丢弃
var recognizedMetadataKeys = map[string]bool{
	"connected_at": true,
	"last_tx_hash": true,
	"referrer":     true,
}

// ConnectWallet 钱包连接
// 用户不存在则以零余额创建，已存在则返回当前数据；
// 并发首连时依赖唯一索引，冲突折叠为读取已有行
func (u *UserLogic) ConnectWallet(walletAddress, chain string, annotations map[string]string) (*UserData, error) {
	identity, err := wallet.Resolve(chain, walletAddress)
	if err != nil {
		return nil, ErrWalletNotResolvable
	}

	metadata := mergeMetadata(model.JSONMap{}, annotations)
	metadata["connected_at"] = time.Now().UTC().Format(time.RFC3339)

	user := model.UserModel{
		WalletAddress: identity.Address,
		Chain:         identity.Chain,
		Metadata:      metadata,
	}
	if err := u.db.Where(&model.UserModel{WalletAddress: identity.Address}).
		FirstOrCreate(&user).Error; err != nil {
		// 并发创建时唯一索引冲突折叠为已有行
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := u.db.Where("wallet_address = ?", identity.Address).First(&user).Error; err != nil {
				return nil, storeError(err)
			}
		} else {
			return nil, storeError(err)
		}
	}

	logger.Debug("Wallet connected: %s (%s)", identity.Address, identity.Chain)

	return u.buildUserData(&user)
}

// GetUserData 获取用户数据及交易历史
func (u *UserLogic) GetUserData(walletAddress string) (*UserData, error) {
	if walletAddress == "" {
		return nil, ErrWalletNotResolvable
	}

	// 查询同时接受EVM与Solana地址，EVM统一小写
	normalized := normalizeLookupAddress(walletAddress)

	var user model.UserModel
	if err := u.db.Where("wallet_address = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}

	return u.buildUserData(&user)
}

// buildUserData 组装用户数据响应
func (u *UserLogic) buildUserData(user *model.UserModel) (*UserData, error) {
	var transactions []model.TransactionModel
	if err := u.db.Where("wallet_address = ?", user.WalletAddress).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, storeError(err)
	}

	return &UserData{
		WalletAddress:     user.WalletAddress,
		Chain:             user.Chain,
		TotalContributed:  user.TotalContributed,
		MemeBalance:       user.MemeBalance,
		Transactions:      transactions,
		FirstContribution: user.FirstContribution,
		LastContribution:  user.LastContribution,
	}, nil
}

// mergeMetadata 合并附加信息，丢弃白名单外的键
func mergeMetadata(base model.JSONMap, annotations map[string]string) model.JSONMap {
	merged := model.JSONMap{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range annotations {
		if recognizedMetadataKeys[k] {
			merged[k] = v
		}
	}
	return merged
}

// normalizeLookupAddress EVM地址小写化，其他链保持原样
func normalizeLookupAddress(address string) string {
	if normalized, err := (&wallet.EVMResolver{}).Resolve(address); err == nil {
		return normalized
	}
	return address
}
