package logic

import (
	"errors"
	"math"
	"time"

	"github.com/memechain/presale-service/internal/logger"
	"github.com/memechain/presale-service/internal/model"
	"github.com/memechain/presale-service/internal/wallet"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseLogic 购买业务逻辑
// 负责把一次购买请求转化为流水、用户余额、预售聚合三方的一致更新，
// 同一tx_hash至多生效一次
type PurchaseLogic struct {
	db *gorm.DB
}

// NewPurchaseLogic 创建购买业务逻辑
func NewPurchaseLogic(db *gorm.DB) *PurchaseLogic {
	return &PurchaseLogic{db: db}
}

// PurchaseRequest 购买请求
type PurchaseRequest struct {
	WalletAddress string
	Amount        float64
	Chain         string
	TxHash        string
}

// PurchaseResult 购买结果
type PurchaseResult struct {
	MemeReceived     int64   `json:"memeReceived"`
	NewBalance       int64   `json:"newBalance"`
	TotalContributed float64 `json:"totalContributed"`
	TxHash           string  `json:"txHash"`
}

// SubmitPurchase 提交购买
// 流水插入、用户入账、聚合自增在同一事务内完成，任一步失败则整体回滚；
// tx_hash唯一索引冲突视为重试，返回首次记录的结果而不是报错
func (p *PurchaseLogic) SubmitPurchase(req *PurchaseRequest) (*PurchaseResult, error) {
	identity, err := wallet.Resolve(req.Chain, req.WalletAddress)
	if err != nil {
		return nil, ErrWalletNotResolvable
	}

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	if req.TxHash == "" {
		return nil, ErrMissingTxHash
	}

	// 开始事务
	tx := p.db.Begin()
	if tx.Error != nil {
		return nil, storeError(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 读取预售配置，价格以此快照为准
	var presale model.PresaleModel
	if err := tx.First(&presale).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresaleNotConfigured
		}
		return nil, storeError(err)
	}

	if !presale.IsActive {
		tx.Rollback()
		return nil, ErrPresaleInactive
	}

	// 按快照价格换算，只发整数枚
	memeReceived := int64(math.Floor(req.Amount / presale.CurrentPrice))

	// 确保用户存在（首次接触时懒创建）
	// 并发首购撞唯一索引时不报错，改为重读已有行；
	// 冲突折叠必须在插入语句上完成，事后补救在Postgres上已无事务可用
	user := model.UserModel{
		WalletAddress: identity.Address,
		Chain:         identity.Chain,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoNothing: true,
	}).Create(&user).Error; err != nil {
		tx.Rollback()
		return nil, storeError(err)
	}
	if err := tx.Where("wallet_address = ?", identity.Address).
		First(&user).Error; err != nil {
		tx.Rollback()
		return nil, storeError(err)
	}

	// paid翻转是"首次确认购买"的判定点：
	// 行级锁保证同一钱包并发首购时只有一个事务翻转成功
	flip := tx.Model(&model.UserModel{}).
		Where("wallet_address = ? AND paid = ?", identity.Address, false).
		Update("paid", true)
	if flip.Error != nil {
		tx.Rollback()
		return nil, storeError(flip.Error)
	}
	isNewParticipant := flip.RowsAffected == 1

	// 用户入账，余额只做原子自增
	now := time.Now()
	metadata := mergeMetadata(user.Metadata, map[string]string{
		"last_tx_hash": req.TxHash,
	})
	credit := map[string]interface{}{
		"meme_balance":      gorm.Expr("meme_balance + ?", memeReceived),
		"total_contributed": gorm.Expr("total_contributed + ?", req.Amount),
		"last_contribution": now,
		"metadata":          metadata,
	}
	if isNewParticipant {
		credit["first_contribution"] = now
	}
	if err := tx.Model(&model.UserModel{}).
		Where("wallet_address = ?", identity.Address).
		Updates(credit).Error; err != nil {
		tx.Rollback()
		return nil, storeError(err)
	}

	// 更新预售聚合，禁止基于快照做读-改-写
	aggregates := map[string]interface{}{
		"total_raised":     gorm.Expr("total_raised + ?", req.Amount),
		"tokens_allocated": gorm.Expr("tokens_allocated + ?", memeReceived),
	}
	if isNewParticipant {
		aggregates["total_participants"] = gorm.Expr("total_participants + ?", 1)
	}
	if err := tx.Model(&model.PresaleModel{}).
		Where("id = ?", presale.Id).
		Updates(aggregates).Error; err != nil {
		tx.Rollback()
		return nil, storeError(err)
	}

	// 事务内读回入账后的余额
	if err := tx.Where("wallet_address = ?", identity.Address).
		First(&user).Error; err != nil {
		tx.Rollback()
		return nil, storeError(err)
	}

	// 创建流水记录并冻结本次的余额快照，唯一索引冲突即为重复提交
	record := model.TransactionModel{
		WalletAddress:    identity.Address,
		Amount:           req.Amount,
		Chain:            identity.Chain,
		MemeReceived:     memeReceived,
		PriceAtPurchase:  presale.CurrentPrice,
		TxHash:           req.TxHash,
		Status:           model.TxStatusConfirmed,
		BalanceAfter:     user.MemeBalance,
		ContributedAfter: user.TotalContributed,
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return p.replayRecorded(req.TxHash)
		}
		return nil, storeError(err)
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, storeError(err)
	}

	logger.Info("Purchase confirmed: wallet=%s amount=%.6f tokens=%d tx=%s",
		identity.Address, req.Amount, memeReceived, req.TxHash)

	return &PurchaseResult{
		MemeReceived:     memeReceived,
		NewBalance:       user.MemeBalance,
		TotalContributed: user.TotalContributed,
		TxHash:           req.TxHash,
	}, nil
}

// replayRecorded 重复提交时返回已记录的结果
// 流水行上冻结了首次落账后的余额快照，重放结果与首次响应一致，
// 不受两次提交之间其他购买的影响
func (p *PurchaseLogic) replayRecorded(txHash string) (*PurchaseResult, error) {
	var record model.TransactionModel
	if err := p.db.Where("tx_hash = ?", txHash).First(&record).Error; err != nil {
		return nil, storeError(err)
	}

	logger.Info("Duplicate purchase replayed: wallet=%s tx=%s", record.WalletAddress, txHash)

	return &PurchaseResult{
		MemeReceived:     record.MemeReceived,
		NewBalance:       record.BalanceAfter,
		TotalContributed: record.ContributedAfter,
		TxHash:           txHash,
	}, nil
}

// validateAmount 校验支付金额
func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
