package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Client - исходящая половина Bot API. Входящие апдейты приходят
// вебхуком через HTTP-сервер, поллинга нет.
type Client struct {
	api     *tgbotapi.BotAPI
	logger  *slog.Logger
	limiter *rate.Limiter
}

func NewClient(token string, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("создание telegram бота: %w", err)
	}

	// Rate limiting - 30 сообщений в секунду
	limiter := rate.NewLimiter(30, 1)

	return &Client{
		api:     bot,
		logger:  logger,
		limiter: limiter,
	}, nil
}

// RegisterWebhook прописывает вебхук у Телеграма.
func (c *Client) RegisterWebhook(webhookURL string) error {
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("собрать конфиг вебхука: %w", err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("установка вебхука: %w", err)
	}

	info, err := c.api.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("получение webhook info: %w", err)
	}
	if info.LastErrorDate != 0 {
		c.logger.Warn("телеграм жалуется на вебхук", slog.String("error", info.LastErrorMessage))
	}

	c.logger.Info("вебхук установлен", slog.Int("pending_updates", info.PendingUpdateCount))
	return nil
}

// Send отправляет любое сообщение с rate limiting (для интерфейса botApi)
func (c *Client) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("rate limiting: %w", err)
	}

	message, err := c.api.Send(chattable)
	if err != nil {
		c.logger.Error("ошибка отправки", slog.Any("error", err))
		return tgbotapi.Message{}, fmt.Errorf("отправка: %w", err)
	}

	return message, nil
}

// Request отправляет запрос к API (для интерфейса botApi)
func (c *Client) Request(chattable tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("rate limiting: %w", err)
	}

	resp, err := c.api.Request(chattable)
	if err != nil {
		c.logger.Error("ошибка запроса к API", slog.Any("error", err))
		return nil, fmt.Errorf("запрос к API: %w", err)
	}

	return resp, nil
}

// GetBotAPI возвращает внутренний BotAPI объект
func (c *Client) GetBotAPI() *tgbotapi.BotAPI {
	return c.api
}
