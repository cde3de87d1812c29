package logic

import (
	"testing"
	"time"

	"github.com/memechain/presale-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPresale(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)

	presale, err := NewPresaleLogic(db).GetPresale()
	require.NoError(t, err)
	assert.Equal(t, 0.00001, presale.CurrentPrice)
	assert.True(t, presale.IsActive)
}

func TestGetPresaleNotConfigured(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewPresaleLogic(db).GetPresale()
	assert.ErrorIs(t, err, ErrPresaleNotConfigured)
}

func TestUpdatePrice(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPresaleLogic(db)

	presale, err := logic.UpdatePrice(2, 0.00002)
	require.NoError(t, err)
	assert.Equal(t, 0.00002, presale.CurrentPrice)
	assert.Equal(t, 2, presale.Stage)

	// 购买逻辑立即看见新价格
	result, err := NewPurchaseLogic(db).SubmitPurchase(purchaseReq(testWallet, 100, "0xnew"))
	require.NoError(t, err)
	assert.Equal(t, int64(5000000), result.MemeReceived)
	assert.Equal(t, 0.00002, mustTx(t, db, "0xnew").PriceAtPurchase)
}

func TestUpdatePriceInvalid(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPresaleLogic(db)

	_, err := logic.UpdatePrice(1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = logic.UpdatePrice(1, -0.5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestUpdateStage(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	require.NoError(t, db.Create(&model.TokenomicsModel{
		PresaleStage1Price: 0.00001,
		PresaleStage2Price: 0.00002,
		PresaleStage3Price: 0.00004,
		PresaleStage4Price: 0.00008,
		PresaleStage5Price: 0.00016,
		IsActive:           true,
	}).Error)
	logic := NewPresaleLogic(db)

	presale, err := logic.UpdateStage(3)
	require.NoError(t, err)
	assert.Equal(t, 3, presale.Stage)
	assert.Equal(t, 0.00004, presale.CurrentPrice)

	_, err = logic.UpdateStage(9)
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestToggleStatus(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	logic := NewPresaleLogic(db)

	presale, err := logic.ToggleStatus(false)
	require.NoError(t, err)
	assert.False(t, presale.IsActive)

	// 关闭后购买被拒
	_, err = NewPurchaseLogic(db).SubmitPurchase(purchaseReq(testWallet, 100, "0xoff"))
	assert.ErrorIs(t, err, ErrPresaleInactive)

	presale, err = logic.ToggleStatus(true)
	require.NoError(t, err)
	assert.True(t, presale.IsActive)
}

func TestGetLiveStats(t *testing.T) {
	db := setupTestDB(t)
	seedPresale(t, db, 0.00001, true)
	require.NoError(t, db.Create(&model.CountdownModel{
		TargetDate: time.Now().AddDate(0, 0, 10),
		Title:      "Memechain Presale",
		IsActive:   true,
	}).Error)

	_, err := NewPurchaseLogic(db).SubmitPurchase(purchaseReq(testWallet, 100, "0xstat"))
	require.NoError(t, err)

	stats, err := NewPresaleLogic(db).GetLiveStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Participants)
	assert.Equal(t, float64(100), stats.RaisedAmount)
	assert.Equal(t, int64(10000000), stats.TokensAllocated)
	assert.Equal(t, 10, stats.DaysToLaunch)
	assert.True(t, stats.IsActive)
}
