package messages

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/orders"
)

// Иконки статусов
const (
	IconYes     = "✅"
	IconYesDone = "🟢"
	IconThumbUp = "👍"
	IconNo      = "❌"
	IconNoDone  = "🔴"
	IconThumbDn = "👎"
	IconStop    = "📛"
	IconWait    = "⏳"
)

// Кнопки главной клавиатуры
const (
	ButtonShop      = "Dükana gir 🛒"
	ButtonBalance   = "Balans"
	ButtonCallAdmin = "Admini çagyr"
)

// Callback data
const (
	CallbackAcceptChat       = "acceptChat_"
	CallbackAcceptOrder      = "acceptOrder_"
	CallbackDeclineOrder     = "declineOrder_"
	CallbackDeliverOrder     = "deliverOrder_"
	CallbackOrderDelivered   = "orderDelivered_"
	CallbackChooseCurrency   = "choose_"
	CallbackSelectCurrency   = "select_"
	CallbackCompleteAdd      = "complateAdd"
	CallbackDeclineAdd       = "declineAdd"
	CallbackCompleteTransfer = "complateTransfer"
	CallbackDeclineTransfer  = "declineTransfer"
	CallbackDeclineCheck     = "declineCheck"
	CallbackCancelBroadcast  = "cancelBroad_"
	CallbackNoop             = "noop"
)

// Общие
const (
	Welcome        = "<b>Hoş geldiňiz!</b> \n Dükana girmek üçin düwmä basyň."
	WelcomeCall    = "Balansyňyzy doldurmak üçin admini çagyryň."
	NotAdmin       = "Siz admin däl"
	UnknownCommand = "Näbelli komanda"
	UnknownMessage = "Näbelli habar"
	RetryStart     = "Täzeden synanşyň /start"
	RetryOrStart   = "Täzeden synanşyň ýa-da /start berip boty başladyň"
	GenericError   = "Ýalňyşlyk ýüze çykdy täzeden synanyşyň."
	Cancelled      = "Goýbolsun edildi."
)

// Магазин
const (
	ShopPrompt = "Dükana girmek üçin aşaky düwma basyň."
	ShopButton = "Söwda 🛒"
)

// Чат с админом
const (
	ChatAlreadyActive      = "Siz häzir hem söhbetdeşlikde. Öňki söhbetdeşligi ýapmak üçin /stop"
	ChatAlreadyActiveUser  = "Siz häzir hem admin bilen söhbetdeşlikde. Öňki söhbetdeşligi ýapmak üçin /stop"
	ChatTransferOpen       = "Geçirimi açyk wagty admin çagyryp bolmaýar. Geçirimiňizi tamamlap ýa-da ýatyryp admini gaýtadan çagyryň."
	ChatAdminCannotCall    = "Admin admini çagyryp bilmeýär!"
	ChatWaitAccept         = "Admin söhbetdeşligi kabul etýänçä garaşyň. Size habar beriler."
	ChatAccepted           = "Söhbetdeşlik kabul edildi. Mundan beýläk söhbetdeşlik ýapylýança, ugradan zatlaryňyz garşy tarapa barar."
	ChatEnded              = "Söhbetdeşlik tamamlandy."
	ChatEndedForPeer       = "<blockquote>bot</blockquote> Söhbetdeşlik tamamlandy."
	ChatAcceptorBusy       = "Siz öňem sohbetdeşlikde, ilki öňki söhbetdeşligi tamamlaň! \n /stop"
	ChatRequestGone        = "Yalnyslyk"
	ChatAlreadyTaken       = "Admin häzir başga söhbetdeşlikde, admini özüňiz çagyryň."
	ChatCallSendID         = "ID ugradyň."
	ChatCallOnlyAdmins     = "Bul komandy diňe adminler ulanyp bilýär!"
	ChatCallInvalidID      = "Nädogry ID. Sanlardan ybarat tg ID ugradyň."
	ChatCallUserNotFound   = "Ulanyjy tapylmady. Başga ID ugradyň ýa-da /stop"
	ButtonAcceptChat       = "Tassykla"
)

// Админ он/офф
const (
	AdminOnline  = "Siz Online " + IconThumbUp
	AdminOffline = "Siz Offline " + IconThumbDn
)

// Регистрация
const (
	SignupPrompt    = "Nickname \n Parol"
	SignupBadFormat = "Nädogry format. Iki setirde Nickname we Parol ugradyň."
	SignupDone      = "Hasaba alyndy " + IconYes
)

// Рассылка
const (
	BroadcastPrompt    = "Texti ugradyn"
	BroadcastCancelled = "Ugradylma ýatyryldy."
	ButtonCancel       = "Ýatyr"
)

// Проверка баланса (/check)
const (
	CheckPrompt       = "Hasap nomer ýa-da tg ID: ?"
	CheckNotFound     = "Ulanyjy tapylmady. Başga ID ugradyň."
	ButtonCheckCancel = "Yatyr"
)

// Пополнение баланса
const (
	SumAddPrompt    = "Balans ID ýa-da Telegram ID: ?"
	SumAddBadAmount = "Girizen mukdaryňyz nädogry. Başdan synanyşyň."
	SumAddNotFound  = "Ulanyjy tapylmady. Başdan synanyşyň."
	SumAddApplied   = "Üstünlikli " + IconYes
	ButtonWrong     = "Ýalňyş"
	ButtonCorrect   = "Dogry"
	ButtonGiveUp    = "Goýbolsun " + IconStop
)

// Перевод между пользователями
const (
	TransferPrompt        = "Kabul edijiniň balans ID-si?"
	TransferInProgress    = "Birinji öňki geçirimi tamamlaň, soňra täzeden synanyşyň!"
	TransferReceiverGone  = "Kabul ediji tapylmady. Başga ID ugradyň."
	TransferSelfForbidden = "Özüňize geçirim edip bolmaýar."
	TransferBadAmount     = "Girizen mukdaryňyz nädogry. Täzeden ugradyň."
	TransferInsufficient  = "Balansyňyz ýeterlik däl."
	TransferDone          = "Geçirim üstünlikli tamamlandy " + IconYes
	TransferCancelled     = "Geçirim ýatyryldy."
	ChooseCurrencyFirst   = "Walýutany düwme bilen saýlaň."
	ButtonTransferCancel  = "Ýatyr " + IconStop
)

// Заказы
const (
	OrderAcceptedForClient = "Sargyt kabul edildi. Admin garaşyň."
	OrderReasonPrompt      = "Ýatyrma sebäbini ugradyň."
	ButtonOrderAccept      = "Kabul et"
	ButtonOrderDeliver     = "Elit"
	ButtonOrderDelivered   = "Tabşyryldy"
	ButtonOrderDecline     = "Ýatyr"
	OrderStatusInvalid     = "Sargyt ýagdaýy dogry däl"
	OrderNotFound          = "Sargyt tapylmady"
)

// BalanceMsg - карточка счёта для пользователя.
func BalanceMsg(walNum string, sumTmt, sumUsdt float64) string {
	return fmt.Sprintf("Hasap nomer: <code>%s</code> \n TMT: %s \n USDT: %s", walNum, FormatAmount(sumTmt), FormatAmount(sumUsdt))
}

// FormatAmount печатает сумму без хвостовых нулей.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%g", v)
}

// UserLink - HTML-ссылка tg://user. Ник опционален, иначе показываем id.
func UserLink(id int64, nick string) string {
	if nick == "" {
		nick = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, id, nick)
}

func OrderIDMsg(id int64) string {
	return fmt.Sprintf("<b>Sargyt ID: %d</b>", id)
}

// OrderCardMsg - карточка заказа для пула админов.
func OrderCardMsg(order *orders.Order) string {
	var b strings.Builder
	b.WriteString(OrderIDMsg(order.ID))
	b.WriteString("\nMüşderi: " + UserLink(order.UserID, ""))
	b.WriteString(fmt.Sprintf("\nHaryt: %d", order.ProductID))
	if order.Quantity != nil {
		b.WriteString(fmt.Sprintf("\nSany: %d", *order.Quantity))
	}
	b.WriteString("\nTöleg: " + string(order.Payment))
	if order.Total != nil {
		b.WriteString(fmt.Sprintf("\nJemi: %s %s", FormatAmount(*order.Total), order.Payment))
	}
	if order.Receiver != "" {
		b.WriteString("\nKabul ediji: " + order.Receiver)
	}
	return b.String()
}

func OrderCompletedMsg(adminID int64, firstName string) string {
	return fmt.Sprintf("%s Sargyt tabşyryldy by ID:%d (%s)", IconYesDone, adminID, firstName)
}

func OrderDeliveringMsg(adminID int64, firstName string) string {
	return fmt.Sprintf("%s Sargyt eltilýär by ID:%d (%s)", IconWait, adminID, firstName)
}

// OrderDeclinedMsg собирает текст отмены. Имя и причина опциональны -
// клиентский вариант идёт без имени админа.
func OrderDeclinedMsg(adminID int64, firstName, reason string) string {
	name := ""
	if firstName != "" {
		name = fmt.Sprintf(" (%s)", firstName)
	}
	rsn := ""
	if reason != "" {
		rsn = "\nSebäp: " + reason
	}
	return fmt.Sprintf("%s Sargyt ýatyryldy by ID:%d%s%s", IconNoDone, adminID, name, rsn)
}

func ChatRequestMsg(clientID int64) string {
	return fmt.Sprintf("%s söhbetdeşlik talap edýär", UserLink(clientID, ""))
}

func ChatPairedMsg(adminID, clientID int64) string {
	return fmt.Sprintf("%s bilen %s söhbetdeşlik edýär.", UserLink(adminID, ""), UserLink(clientID, ""))
}

// ChatEndedInfoMsg - правка уведомлений пула после /stop.
func ChatEndedInfoMsg(enderID, peerID int64, enderIsAdmin bool) string {
	tail := ""
	if enderIsAdmin {
		tail = "."
	}
	return fmt.Sprintf("%s \n%s bilen söhbetdeşligi tamamlady%s", UserLink(enderID, ""), UserLink(peerID, ""), tail)
}

// BroadcastDoneMsg печатает итог рассылки.
func BroadcastDoneMsg(sent, total int) string {
	return fmt.Sprintf("Ugradyldy: %d/%d %s", sent, total, IconYes)
}

// SuspiciousCaseMsg - сигнал пулу о вызове админ-команды посторонним.
func SuspiciousCaseMsg(mssg, command string, userID int64) string {
	return fmt.Sprintf("%s \n Komand: %s \n Ulanyjy: ID: %d", mssg, command, userID)
}

func SumAddCurrencyPrompt(walNum string) string {
	return fmt.Sprintf("Hasap nomer: %s \n Walýuta ?", walNum)
}

func SumAddAmountPrompt(walNum, currency string) string {
	return fmt.Sprintf("Hasap nomer: %s \n Mukdary ugradyň (%s)", walNum, currency)
}

func SumAddConfirmPrompt(walNum string, sum float64, currency string) string {
	return fmt.Sprintf("Hasap nomer: %s \n %s %s", walNum, FormatAmount(sum), currency)
}

func TransferCurrencyPrompt(receiverWalNum string) string {
	return fmt.Sprintf("Kabul ediji: %s \n Walýuta ?", receiverWalNum)
}

func TransferAmountPrompt(receiverWalNum, currency string) string {
	return fmt.Sprintf("Kabul ediji: %s \n Mukdary ugradyň (%s)", receiverWalNum, currency)
}

func TransferConfirmPrompt(receiverWalNum string, amount float64, currency string) string {
	return fmt.Sprintf("Kabul ediji: %s \n %s %s", receiverWalNum, FormatAmount(amount), currency)
}

// Клавиатуры

func MainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonShop),
			tgbotapi.NewKeyboardButton(ButtonBalance),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonCallAdmin),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func ShopKeyboard(miniAppURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   ShopButton,
				WebApp: &tgbotapi.WebAppInfo{URL: miniAppURL},
			},
		),
	)
}

func SumAddCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonCancel, CallbackDeclineAdd),
		),
	)
}

func SumAddCurrencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("TMT", CallbackChooseCurrency+"TMT"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("USDT", CallbackChooseCurrency+"USDT"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonGiveUp, CallbackDeclineAdd),
		),
	)
}

func SumAddConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonWrong, CallbackDeclineAdd),
			tgbotapi.NewInlineKeyboardButtonData(ButtonCorrect, CallbackCompleteAdd),
		),
	)
}

func TransferCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonTransferCancel, CallbackDeclineTransfer),
		),
	)
}

func TransferCurrencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("TMT", CallbackSelectCurrency+"TMT"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("USDT", CallbackSelectCurrency+"USDT"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonTransferCancel, CallbackDeclineTransfer),
		),
	)
}

func TransferConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonWrong, CallbackDeclineTransfer),
			tgbotapi.NewInlineKeyboardButtonData(ButtonCorrect, CallbackCompleteTransfer),
		),
	)
}

func CheckCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonCheckCancel, CallbackDeclineCheck),
		),
	)
}

func AcceptChatKeyboard(clientID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonAcceptChat, fmt.Sprintf("%s%d", CallbackAcceptChat, clientID)),
		),
	)
}

// PairedPeerKeyboard - подсказка принявшему админу, с кем идёт чат.
func PairedPeerKeyboard(clientID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d", clientID), CallbackNoop),
		),
	)
}

func BroadcastCancelKeyboard(adminID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonCancel, fmt.Sprintf("%s%d", CallbackCancelBroadcast, adminID)),
		),
	)
}

func NewOrderKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonOrderAccept, fmt.Sprintf("%s%d", CallbackAcceptOrder, orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonOrderDecline, fmt.Sprintf("%s%d", CallbackDeclineOrder, orderID)),
		),
	)
}

func DeliverOrderKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonOrderDeliver, fmt.Sprintf("%s%d", CallbackDeliverOrder, orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonOrderDecline, fmt.Sprintf("%s%d", CallbackDeclineOrder, orderID)),
		),
	)
}

func OrderDeliveredKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonOrderDelivered, fmt.Sprintf("%s%d", CallbackOrderDelivered, orderID)),
		),
	)
}
