package logic

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/memechain/presale-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWallet = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

func purchaseReq(wallet string, amount float64, txHash string) *PurchaseRequest {
	return &PurchaseRequest{
		WalletAddress: wallet,
		Amount:        amount,
		Chain:         "ethereum",
		TxHash:        txHash,
	}
}

func TestSubmitPurchase(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	result, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xaaa"))
	require.NoError(t, err)

	assert.Equal(t, int64(10000000), result.MemeReceived)
	assert.Equal(t, int64(10000000), result.NewBalance)
	assert.Equal(t, float64(100), result.TotalContributed)
	assert.Equal(t, "0xaaa", result.TxHash)

	// 地址小写落库
	var user model.UserModel
	require.NoError(t, db.Where("wallet_address = ?", "0x742d35cc6634c0532925a3b844bc454e4438f44e").First(&user).Error)
	assert.True(t, user.Paid)
	assert.NotNil(t, user.FirstContribution)
	assert.Equal(t, "0xaaa", user.Metadata["last_tx_hash"])

	presale := readPresale(t, db)
	assert.Equal(t, float64(100), presale.TotalRaised)
	assert.Equal(t, int64(10000000), presale.TokensAllocated)
	assert.Equal(t, int64(1), presale.TotalParticipants)

	var record model.TransactionModel
	require.NoError(t, db.Where("tx_hash = ?", "0xaaa").First(&record).Error)
	assert.Equal(t, model.TxStatusConfirmed, record.Status)
	assert.Equal(t, 0.00001, record.PriceAtPurchase)
	assert.Equal(t, int64(10000000), record.BalanceAfter)
	assert.Equal(t, float64(100), record.ContributedAfter)
}

func TestSubmitPurchaseFloorSemantics(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	// 整除，无舍入
	result, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xexact"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000000), result.MemeReceived)

	// 截断而非四舍五入
	result, err = logic.SubmitPurchase(purchaseReq(testWallet, 99.999999, "0xtrunc"))
	require.NoError(t, err)
	assert.Equal(t, int64(9999999), result.MemeReceived)
}

func TestSubmitPurchaseInvalidAmount(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := logic.SubmitPurchase(purchaseReq(testWallet, amount, "0xbad"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	// 无任何副作用
	var txCount, userCount int64
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&txCount).Error)
	require.NoError(t, db.Model(&model.UserModel{}).Count(&userCount).Error)
	assert.Zero(t, txCount)
	assert.Zero(t, userCount)

	presale := readPresale(t, db)
	assert.Zero(t, presale.TotalRaised)
	assert.Zero(t, presale.TokensAllocated)
	assert.Zero(t, presale.TotalParticipants)
}

func TestSubmitPurchaseInactive(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, false)
	logic := NewPurchaseLogic(db)

	_, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xaaa"))
	assert.ErrorIs(t, err, ErrPresaleInactive)

	// 三个存储都不应有变化
	var txCount, userCount int64
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&txCount).Error)
	require.NoError(t, db.Model(&model.UserModel{}).Count(&userCount).Error)
	assert.Zero(t, txCount)
	assert.Zero(t, userCount)

	presale := readPresale(t, db)
	assert.Zero(t, presale.TotalRaised)
	assert.Zero(t, presale.TokensAllocated)
	assert.Zero(t, presale.TotalParticipants)
}

func TestSubmitPurchaseUnresolvableWallet(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	_, err := logic.SubmitPurchase(purchaseReq("", 100, "0xaaa"))
	assert.ErrorIs(t, err, ErrWalletNotResolvable)

	_, err = logic.SubmitPurchase(purchaseReq("not-an-address", 100, "0xaaa"))
	assert.ErrorIs(t, err, ErrWalletNotResolvable)

	_, err = logic.SubmitPurchase(&PurchaseRequest{
		WalletAddress: testWallet,
		Amount:        100,
		Chain:         "unknown-chain",
		TxHash:        "0xaaa",
	})
	assert.ErrorIs(t, err, ErrWalletNotResolvable)
}

func TestSubmitPurchaseIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	first, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xdup"))
	require.NoError(t, err)

	// 相同tx_hash重放：不报错，不二次入账
	second, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xdup"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var txCount int64
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&txCount).Error)
	assert.Equal(t, int64(1), txCount)

	presale := readPresale(t, db)
	assert.Equal(t, float64(100), presale.TotalRaised)
	assert.Equal(t, int64(10000000), presale.TokensAllocated)
	assert.Equal(t, int64(1), presale.TotalParticipants)
}

func TestSubmitPurchaseIdempotentConcurrent(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	const attempts = 10
	var wg sync.WaitGroup
	results := make([]*PurchaseResult, attempts)
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xrace"))
		}(i)
	}
	wg.Wait()

	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, int64(10000000), results[i].MemeReceived)
	}

	var txCount int64
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&txCount).Error)
	assert.Equal(t, int64(1), txCount)

	presale := readPresale(t, db)
	assert.Equal(t, float64(100), presale.TotalRaised)
	assert.Equal(t, int64(1), presale.TotalParticipants)
}

func TestSubmitPurchaseConcurrentFirstCreateFolds(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	// 故障注入：users插入前抢先写入同地址行，复现并发首购中
	// 后到事务撞唯一索引的交错
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("race_first_create", func(tx *gorm.DB) {
		if tx.Statement.Table != "users" || injected {
			return
		}
		injected = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (wallet_address, chain, paid) VALUES (?, ?, ?)",
			"0x742d35cc6634c0532925a3b844bc454e4438f44e", "ethereum", false,
		)
	})
	require.NoError(t, err)
	defer db.Callback().Create().Remove("race_first_create")

	// 冲突折叠为已有行，购买正常入账而不是整体回滚
	result, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xfold"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000000), result.NewBalance)

	var userCount int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)

	presale := readPresale(t, db)
	assert.Equal(t, float64(100), presale.TotalRaised)
	assert.Equal(t, int64(1), presale.TotalParticipants)
}

func TestSubmitPurchaseReplaySnapshot(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	first, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xsnap"))
	require.NoError(t, err)

	// 两次提交之间同钱包又买了一笔
	_, err = logic.SubmitPurchase(purchaseReq(testWallet, 50, "0xlater"))
	require.NoError(t, err)

	// 重放返回首次落账时的余额快照，而非当前余额
	replay, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xsnap"))
	require.NoError(t, err)
	assert.Equal(t, first, replay)
	assert.Equal(t, int64(10000000), replay.NewBalance)
	assert.Equal(t, float64(100), replay.TotalContributed)
}

func TestSubmitPurchaseParticipantCounting(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	// 同一钱包两次购买只计一次参与者
	_, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0x1"))
	require.NoError(t, err)
	_, err = logic.SubmitPurchase(purchaseReq(testWallet, 50, "0x2"))
	require.NoError(t, err)

	presale := readPresale(t, db)
	assert.Equal(t, int64(1), presale.TotalParticipants)

	// 不同钱包首购加一
	other := "0x1111111111111111111111111111111111111111"
	_, err = logic.SubmitPurchase(purchaseReq(other, 25, "0x3"))
	require.NoError(t, err)

	presale = readPresale(t, db)
	assert.Equal(t, int64(2), presale.TotalParticipants)
	assert.Equal(t, float64(175), presale.TotalRaised)
}

func TestSubmitPurchaseConservation(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	amounts := []float64{1, 2.5, 10, 0.75, 33.33, 100}
	var wantRaised float64
	var wantTokens int64

	for i, amount := range amounts {
		wallet := fmt.Sprintf("0x%040d", i)
		result, err := logic.SubmitPurchase(purchaseReq(wallet, amount, fmt.Sprintf("0xc%d", i)))
		require.NoError(t, err)
		wantRaised += amount
		wantTokens += result.MemeReceived
	}

	// 聚合等于逐笔之和
	presale := readPresale(t, db)
	assert.InDelta(t, wantRaised, presale.TotalRaised, 1e-9)
	assert.Equal(t, wantTokens, presale.TokensAllocated)
	assert.Equal(t, int64(len(amounts)), presale.TotalParticipants)

	// 用户余额等于该钱包流水之和（每个钱包一笔）
	var users []model.UserModel
	require.NoError(t, db.Find(&users).Error)
	for _, user := range users {
		var tokens int64
		require.NoError(t, db.Model(&model.TransactionModel{}).
			Where("wallet_address = ? AND status = ?", user.WalletAddress, model.TxStatusConfirmed).
			Select("COALESCE(SUM(meme_received), 0)").
			Scan(&tokens).Error)
		assert.Equal(t, tokens, user.MemeBalance)
	}
}

func TestSubmitPurchaseConcurrentBurst(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.1, true)
	logic := NewPurchaseLogic(db)

	const buyers = 100
	var wg sync.WaitGroup
	errs := make([]error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wallet := fmt.Sprintf("0x%040d", i)
			_, errs[i] = logic.SubmitPurchase(purchaseReq(wallet, 1, fmt.Sprintf("0xb%d", i)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < buyers; i++ {
		require.NoError(t, errs[i])
	}

	// 无丢失更新
	presale := readPresale(t, db)
	assert.Equal(t, int64(buyers), presale.TotalParticipants)
	assert.Equal(t, int64(1000), presale.TokensAllocated)
	assert.InDelta(t, float64(buyers), presale.TotalRaised, 1e-9)
}

func TestSubmitPurchaseRollbackOnCreditFailure(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPurchaseLogic(db)

	// 故障注入：用户表更新一律失败
	err := db.Callback().Update().Before("gorm:update").Register("fail_user_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			tx.AddError(fmt.Errorf("injected store failure"))
		}
	})
	require.NoError(t, err)
	defer db.Callback().Update().Remove("fail_user_update")

	_, err = logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xfail"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	// 整体回滚：流水不落库，聚合不变
	var txCount int64
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&txCount).Error)
	assert.Zero(t, txCount)

	presale := readPresale(t, db)
	assert.Zero(t, presale.TotalRaised)
	assert.Zero(t, presale.TokensAllocated)
	assert.Zero(t, presale.TotalParticipants)
}

func TestSubmitPurchaseNotConfigured(t *testing.T) {
	db := setupTestDB(t)
	logic := NewPurchaseLogic(db)

	_, err := logic.SubmitPurchase(purchaseReq(testWallet, 100, "0xaaa"))
	assert.ErrorIs(t, err, ErrPresaleNotConfigured)
}
