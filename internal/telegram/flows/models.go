package flows

import "yyldyz-bot/internal/stories/ledger"

// Снимки многошаговых диалогов. Каждое поле заполняется очередным
// ответом пользователя и сразу persisted - рестарт не теряет шаг.

// SumAddData - флоу правки баланса админом (/edit).
type SumAddData struct {
	MssgID   int             `json:"mssg_id"`
	WalNum   string          `json:"wal_num"`
	ClientID int64           `json:"client_id"`
	Currency ledger.Currency `json:"currency"`
	Sum      float64         `json:"sum"`
}

// TransferData - флоу перевода между счетами (/0804).
type TransferData struct {
	MessageID      int             `json:"message_id"`
	ReceiverID     int64           `json:"receiver_id"`
	SenderWalNum   string          `json:"sender_wal_num"`
	ReceiverWalNum string          `json:"receiver_wal_num"`
	Amount         float64         `json:"amount"`
	Currency       ledger.Currency `json:"currency"`
}

// CheckData - флоу просмотра чужого баланса админом (/check).
type CheckData struct {
	MessageID int `json:"message_id"`
}

// SignupData - флоу регистрации админа (/signup). Ник и пароль приходят
// одним сообщением, поэтому промежуточных полей нет.
type SignupData struct {
	MessageID int `json:"message_id"`
}

// BroadcastData - флоу рассылки (/broadcast).
type BroadcastData struct {
	MessageID int `json:"message_id"`
}

// ReasonData - сбор причины отказа по заказу. Сообщения админов берутся
// из order_messages по OrderID, позиционные массивы не нужны.
type ReasonData struct {
	OrderID    int64 `json:"order_id"`
	ClientID   int64 `json:"client_id"`
	ClntMssgID int   `json:"clnt_mssg_id"`
}
