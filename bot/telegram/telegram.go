// Package telegram 将命令执行器接入 Telegram 长轮询。
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	tg "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"spendbot/bot"
	"spendbot/config"
)

// Bot Telegram 接入端
type Bot struct {
	api  *tg.Bot
	exec *bot.Executor
}

// New 创建 Telegram 机器人实例
func New(cfg *config.TelegramConfig, exec *bot.Executor) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("未配置 telegram token")
	}

	b := &Bot{exec: exec}

	opts := []tg.Option{
		tg.WithDefaultHandler(b.handleUpdate),
	}
	if cfg.Debug {
		opts = append(opts, tg.WithDebug())
	}

	api, err := tg.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建 telegram bot 失败: %w", err)
	}
	b.api = api
	return b, nil
}

// Start 启动长轮询，阻塞直到 ctx 取消
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("获取 bot 信息失败: %w", err)
	}
	log.Printf("telegram bot 已启动: @%s", me.Username)
	b.api.Start(ctx)
	return nil
}

// handleUpdate 把入站消息交给执行器，空回复不发送
func (b *Bot) handleUpdate(ctx context.Context, api *tg.Bot, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message

	ownerID := strconv.FormatInt(msg.From.ID, 10)
	reply := b.exec.HandleMessage(ownerID, msg.From.FirstName, msg.Text)
	if reply == "" {
		return
	}

	if _, err := api.SendMessage(ctx, &tg.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   reply,
	}); err != nil {
		log.Printf("发送 telegram 消息失败 chat=%d: %v", msg.Chat.ID, err)
	}
}
