package price

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/memechain/presale-service/internal/config"
	"github.com/memechain/presale-service/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// 仅用于前端展示，购买换算只认presale表的current_price

// Quote 单个币种的USD报价
type Quote struct {
	USD       float64   `json:"usd"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service 行情服务
// CoinGecko为主，Binance兜底，带TTL缓存
type Service struct {
	client     *http.Client
	currencies []string
	ttl        time.Duration

	// 可覆盖的接口地址（测试用）
	CoinGeckoURL string
	BinanceURL   string

	mu    sync.RWMutex
	cache map[string]Quote
}

// binance兜底交易对
var binanceSymbols = map[string]string{
	"ethereum":                "ETHUSDT",
	"binancecoin":             "BNBUSDT",
	"solana":                  "SOLUSDT",
	"arbitrum":                "ARBUSDT",
	"polygon-ecosystem-token": "POLUSDT",
}

// NewService 创建行情服务
func NewService(cfg config.PriceConfig) *Service {
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Service{
		client:       &http.Client{Timeout: 5 * time.Second},
		currencies:   cfg.Currencies,
		ttl:          ttl,
		CoinGeckoURL: "https://api.coingecko.com/api/v3/simple/price",
		BinanceURL:   "https://api.binance.com/api/v3/ticker/price",
		cache:        make(map[string]Quote),
	}
}

// GetPrices 返回当前缓存的全部报价
// 缓存过期时同步刷新一次，刷新失败则继续返回旧值
func (s *Service) GetPrices() map[string]float64 {
	if s.stale() {
		if err := s.Refresh(); err != nil {
			logger.Warn("Price refresh failed, serving cached quotes: %v", err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	prices := make(map[string]float64, len(s.cache))
	for id, quote := range s.cache {
		prices[id] = quote.USD
	}
	return prices
}

// Refresh 并发拉取所有币种的报价
func (s *Service) Refresh() error {
	if len(s.currencies) == 0 {
		return nil
	}

	// 创建临时协程池，大小等于币种数量
	pool, err := ants.NewPool(len(s.currencies))
	if err != nil {
		return fmt.Errorf("failed to create price fetch pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var failed sync.Map

	for _, id := range s.currencies {
		currency := id
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			usd, err := s.fetchPrice(currency)
			if err != nil {
				failed.Store(currency, err)
				return
			}
			s.mu.Lock()
			s.cache[currency] = Quote{USD: usd, UpdatedAt: time.Now()}
			s.mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			failed.Store(currency, submitErr)
		}
	}
	wg.Wait()

	var firstErr error
	failed.Range(func(key, value interface{}) bool {
		logger.Warn("Failed to fetch price for %s: %v", key, value)
		if firstErr == nil {
			firstErr = value.(error)
		}
		return true
	})
	return firstErr
}

// fetchPrice 拉取单个币种报价，CoinGecko失败时切换Binance
func (s *Service) fetchPrice(currency string) (float64, error) {
	usd, err := s.fetchFromCoinGecko(currency)
	if err == nil {
		return usd, nil
	}

	symbol, ok := binanceSymbols[currency]
	if !ok {
		// 稳定币没有兜底交易对，按1美元处理
		if currency == "tether" {
			return 1.0, nil
		}
		return 0, err
	}

	logger.Debug("CoinGecko failed for %s, falling back to Binance: %v", currency, err)
	return s.fetchFromBinance(symbol)
}

// fetchFromCoinGecko 从CoinGecko拉取USD报价
func (s *Service) fetchFromCoinGecko(currency string) (float64, error) {
	reqURL := fmt.Sprintf("%s?ids=%s&vs_currencies=usd", s.CoinGeckoURL, url.QueryEscape(currency))

	resp, err := s.client.Get(reqURL)
	if err != nil {
		return 0, fmt.Errorf("coingecko request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read coingecko response: %w", err)
	}

	var data map[string]map[string]float64
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("failed to parse coingecko response: %w", err)
	}

	usd, ok := data[currency]["usd"]
	if !ok {
		return 0, fmt.Errorf("price for %s not found in coingecko response", currency)
	}
	return usd, nil
}

// fetchFromBinance 从Binance拉取USDT交易对价格
func (s *Service) fetchFromBinance(symbol string) (float64, error) {
	reqURL := fmt.Sprintf("%s?symbol=%s", s.BinanceURL, url.QueryEscape(symbol))

	resp, err := s.client.Get(reqURL)
	if err != nil {
		return 0, fmt.Errorf("binance request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("binance returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read binance response: %w", err)
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, fmt.Errorf("failed to parse binance response: %w", err)
	}

	usd, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to convert binance price %q: %w", ticker.Price, err)
	}
	return usd, nil
}

// stale 判断缓存是否过期
func (s *Service) stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.cache) == 0 {
		return true
	}
	for _, quote := range s.cache {
		if time.Since(quote.UpdatedAt) > s.ttl {
			return true
		}
	}
	return false
}
