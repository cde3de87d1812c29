package logic

import (
	"testing"

	"github.com/memechain/presale-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectWalletCreatesUser(t *testing.T) {
	db := setupTestDB(t)
	logic := NewUserLogic(db)

	data, err := logic.ConnectWallet(testWallet, "ethereum", nil)
	require.NoError(t, err)

	assert.Equal(t, "0x742d35cc6634c0532925a3b844bc454e4438f44e", data.WalletAddress)
	assert.Zero(t, data.MemeBalance)
	assert.Zero(t, data.TotalContributed)
	assert.Empty(t, data.Transactions)

	var user model.UserModel
	require.NoError(t, db.First(&user).Error)
	assert.False(t, user.Paid)
	assert.NotEmpty(t, user.Metadata["connected_at"])
}

func TestConnectWalletExistingUser(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)

	_, err := NewPurchaseLogic(db).SubmitPurchase(purchaseReq(testWallet, 100, "0xaaa"))
	require.NoError(t, err)

	// 再次连接返回已有数据，不重置余额
	data, err := NewUserLogic(db).ConnectWallet(testWallet, "ethereum", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10000000), data.MemeBalance)
	assert.Equal(t, float64(100), data.TotalContributed)
	assert.Len(t, data.Transactions, 1)

	var count int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConnectWalletMetadataWhitelist(t *testing.T) {
	db := setupTestDB(t)
	logic := NewUserLogic(db)

	_, err := logic.ConnectWallet(testWallet, "ethereum", map[string]string{
		"referrer": "friend",
		"evil_key": "dropped",
		"is_admin": "true",
	})
	require.NoError(t, err)

	var user model.UserModel
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, "friend", user.Metadata["referrer"])
	assert.NotContains(t, user.Metadata, "evil_key")
	assert.NotContains(t, user.Metadata, "is_admin")
}

func TestConnectWalletSolana(t *testing.T) {
	db := setupTestDB(t)
	logic := NewUserLogic(db)

	// Solana地址大小写敏感，保持原样
	solAddr := "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	data, err := logic.ConnectWallet(solAddr, "solana", nil)
	require.NoError(t, err)
	assert.Equal(t, solAddr, data.WalletAddress)
	assert.Equal(t, "solana", data.Chain)
}

func TestConnectWalletUnresolvable(t *testing.T) {
	db := setupTestDB(t)
	logic := NewUserLogic(db)

	_, err := logic.ConnectWallet("bogus", "ethereum", nil)
	assert.ErrorIs(t, err, ErrWalletNotResolvable)

	_, err = logic.ConnectWallet(testWallet, "dogechain", nil)
	assert.ErrorIs(t, err, ErrWalletNotResolvable)
}

func TestGetUserData(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)

	_, err := NewPurchaseLogic(db).SubmitPurchase(purchaseReq(testWallet, 100, "0xaaa"))
	require.NoError(t, err)
	_, err = NewPurchaseLogic(db).SubmitPurchase(purchaseReq(testWallet, 50, "0xbbb"))
	require.NoError(t, err)

	// 混合大小写地址也能命中
	data, err := NewUserLogic(db).GetUserData(testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(15000000), data.MemeBalance)
	assert.Equal(t, float64(150), data.TotalContributed)
	assert.Len(t, data.Transactions, 2)
	assert.NotNil(t, data.FirstContribution)
	assert.NotNil(t, data.LastContribution)
}

func TestGetUserDataNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewUserLogic(db).GetUserData(testWallet)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
