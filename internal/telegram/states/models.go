package states

import (
	"yyldyz-bot/internal/stories/chat"
	"yyldyz-bot/internal/telegram/flows"
)

// Kind - вид активного флоу пользователя.
type Kind string

const (
	KindNone        Kind = "none"
	KindReason      Kind = "reason"
	KindSumAdd      Kind = "sumadd"
	KindTransfer    Kind = "transfer"
	KindCheck       Kind = "check"
	KindChatCalling Kind = "chat_calling"
	KindChatPaired  Kind = "chat_paired"
	KindSignup      Kind = "signup"
	KindBroadcast   Kind = "broadcast"
)

// ActiveFlow - tagged union: какой именно диалог владеет следующим
// сообщением пользователя. Заполнено ровно одно поле по Kind.
type ActiveFlow struct {
	Kind      Kind
	Reason    *flows.ReasonData
	SumAdd    *flows.SumAddData
	Transfer  *flows.TransferData
	Check     *flows.CheckData
	Chat      *chat.State
	Signup    *flows.SignupData
	Broadcast *flows.BroadcastData
}
