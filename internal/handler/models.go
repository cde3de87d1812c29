package handler

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// ConnectWalletRequest 钱包连接请求
// 允许携带附加字段，白名单外的键会被丢弃
type ConnectWalletRequest struct {
	WalletAddress string            `json:"walletAddress" binding:"required"`
	Chain         string            `json:"chain" binding:"required"`
	Annotations   map[string]string `json:"annotations"`
}

// PurchaseRequest 购买请求
type PurchaseRequest struct {
	WalletAddress string  `json:"walletAddress" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Chain         string  `json:"chain" binding:"required"`
	TxHash        string  `json:"txHash" binding:"required"`
}

// SubscribeRequest 邮件订阅请求
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// AdminLoginRequest 管理端登录请求
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePriceRequest 更新价格请求
type UpdatePriceRequest struct {
	Stage int     `json:"stage"`
	Price float64 `json:"price" binding:"required"`
}

// UpdateStageRequest 切换阶段请求
type UpdateStageRequest struct {
	Stage int `json:"stage" binding:"required"`
}

// ToggleStatusRequest 预售开关请求
type ToggleStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// PresaleStatusResponse 预售状态响应
type PresaleStatusResponse struct {
	CurrentPrice      float64 `json:"currentPrice"`
	Stage             int     `json:"stage"`
	TotalRaised       float64 `json:"totalRaised"`
	TokensAllocated   int64   `json:"tokensAllocated"`
	TotalParticipants int64   `json:"totalParticipants"`
	HardCap           float64 `json:"hardCap"`
	IsActive          bool    `json:"isActive"`
}
