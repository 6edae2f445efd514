package protocol

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token string `json:"token"` // 重连令牌
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// StartPayload 开始训练请求
type StartPayload struct {
	Mode string `json:"mode"` // tutorial/automated
}

// GuessPayload 猜测请求，原样转发用户输入，由服务端校验
type GuessPayload struct {
	Guess string `json:"guess"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ClientID       string `json:"client_id"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
	Online         int64  `json:"online"`          // 在线训练人数
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	ClientID string       `json:"client_id"`
	State    StatePayload `json:"state"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// CardInfo 牌信息
type CardInfo struct {
	Suit int    `json:"suit"`
	Rank int    `json:"rank"`
	Key  string `json:"key"` // 卡面图片 key，如 Jack_Hearts
}

// TallyInfo 教学模式的对错计数
type TallyInfo struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// CardDealtPayload 发牌信号，教学模式下不携带流水计数
type CardDealtPayload struct {
	Card         CardInfo `json:"card"`
	RunningCount *int     `json:"running_count,omitempty"`
}

// GuessScoredPayload 猜测结果信号
type GuessScoredPayload struct {
	Correct bool      `json:"correct"`
	Tally   TallyInfo `json:"tally"`
}

// StatePayload 会话状态
type StatePayload struct {
	Mode         string    `json:"mode"`
	NumDecks     int       `json:"num_decks"`
	Card         *CardInfo `json:"card,omitempty"`
	RunningCount *int      `json:"running_count,omitempty"` // 教学模式下隐藏
	TrueCount    *float64  `json:"true_count,omitempty"`
	Remaining    int       `json:"remaining"`
	CardsDealt   int       `json:"cards_dealt"`
	Tally        TallyInfo `json:"tally"`
	LastGuess    *bool     `json:"last_guess,omitempty"` // 上一次猜测是否正确
	Exhausted    bool      `json:"exhausted"`
	Quit         bool      `json:"quit"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
