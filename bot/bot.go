package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery/config"
	"food-delivery/models"
	"food-delivery/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	admin    int64
	catalog  *services.Catalog
	sessions *services.SessionStore
}

func New(cfg *config.Config, catalog *services.Catalog) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:      api,
		cfg:      cfg,
		admin:    cfg.Telegram.AdminID,
		catalog:  catalog,
		sessions: services.NewSessionStore(),
	}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Начать"},
			{Command: "menu", Description: "Меню"},
			{Command: "pay", Description: "Оплатить заказ"},
			{Command: "orders", Description: "Мои заказы"},
			{Command: "location", Description: "Адрес доставки"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

func (b *Bot) Start() {
	_ = b.setBotCommands()
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.PreCheckoutQuery != nil {
		b.handlePreCheckout(update.PreCheckoutQuery)
		return
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	msg := update.Message

	switch {
	case msg.SuccessfulPayment != nil:
		b.handleSuccessfulPayment(msg)
	case msg.Location != nil:
		b.handleLocation(msg)
	default:
		switch strings.TrimSpace(msg.Text) {
		case "/start":
			b.handleStart(msg)
		case "/menu":
			b.handleMenu(msg)
		case "/pay":
			b.handlePay(msg)
		case "/orders":
			b.handleMyOrders(msg)
		case "/admin_orders":
			b.handleAdminOrders(msg)
		case "/location":
			b.handleAskLocation(msg)
		}
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithField("chat_id", chatID).WithError(err).Warn("send message")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	from := msg.From
	user := models.User{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}
	if err := services.RegisterUser(context.Background(), user); err != nil {
		log.WithField("user_id", from.ID).WithError(err).Warn("register user")
		return
	}
	b.send(msg.Chat.ID, fmt.Sprintf(
		"Привет, %s! Добро пожаловать в наш бот для доставки еды. Используйте /menu чтобы увидеть наше меню.",
		from.FirstName,
	))
}

func (b *Bot) menuKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range b.catalog.Items() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s - %d руб.", it.Name, it.Price),
				"item:"+it.Name,
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) handleMenu(msg *tgbotapi.Message) {
	b.sessions.Advance(msg.From.ID, services.SessionMenuShown, nil)
	out := tgbotapi.NewMessage(msg.Chat.ID, "Выберите блюдо из меню:")
	out.ReplyMarkup = b.menuKeyboard()
	if _, err := b.api.Send(out); err != nil {
		log.WithField("chat_id", msg.Chat.ID).WithError(err).Warn("send menu")
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.WithError(err).Warn("answer callback")
	}

	data := cq.Data
	switch {
	case strings.HasPrefix(data, "item:"):
		b.handleItemSelected(cq, strings.TrimPrefix(data, "item:"))
	}
}

func (b *Bot) handleItemSelected(cq *tgbotapi.CallbackQuery, item string) {
	userID := cq.From.ID
	order, err := services.PlaceOrder(context.Background(), b.catalog, userID, item)
	if err != nil {
		if errors.Is(err, services.ErrUnknownItem) {
			b.send(cq.Message.Chat.ID, "Такого блюда нет в меню.")
			return
		}
		log.WithField("user_id", userID).WithError(err).Warn("place order")
		return
	}
	b.sessions.Advance(userID, services.SessionItemSelected, func(s *services.Session) {
		s.LastOrderID = order.ID
	})

	edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID,
		fmt.Sprintf("Вы выбрали: %s за %d руб. Спасибо за заказ!", order.Item, order.Price))
	if _, err := b.api.Send(edit); err != nil {
		log.WithField("user_id", userID).WithError(err).Warn("edit message")
	}
}

func (b *Bot) handlePay(msg *tgbotapi.Message) {
	invoice := tgbotapi.NewInvoice(
		msg.Chat.ID,
		services.InvoiceTitle,
		services.InvoiceDescription,
		b.cfg.Payment.Payload,
		b.cfg.Payment.ProviderToken,
		services.InvoiceStartParam,
		b.cfg.Payment.Currency,
		[]tgbotapi.LabeledPrice{
			{Label: services.InvoiceItem, Amount: services.InvoiceAmountMinor()},
		},
	)
	b.sessions.Advance(msg.From.ID, services.SessionPaymentRequested, nil)
	if _, err := b.api.Send(invoice); err != nil {
		log.WithField("user_id", msg.From.ID).WithError(err).Warn("send invoice")
	}
}

func (b *Bot) handlePreCheckout(q *tgbotapi.PreCheckoutQuery) {
	answer := tgbotapi.PreCheckoutConfig{PreCheckoutQueryID: q.ID, OK: true}
	if err := services.ValidatePrecheckout(q.InvoicePayload, b.cfg.Payment.Payload); err != nil {
		answer.OK = false
		answer.ErrorMessage = services.PrecheckoutErrorText
		log.WithField("user_id", q.From.ID).Warn("pre-checkout payload mismatch")
	}
	if _, err := b.api.Request(answer); err != nil {
		log.WithError(err).Warn("answer pre-checkout")
	}
}

func (b *Bot) handleSuccessfulPayment(msg *tgbotapi.Message) {
	b.sessions.Advance(msg.From.ID, services.SessionPaymentConfirmed, nil)
	b.send(msg.Chat.ID, "Оплата прошла успешно! Спасибо за заказ.")
}

func (b *Bot) handleMyOrders(msg *tgbotapi.Message) {
	orders, err := services.ListOrdersByUser(context.Background(), msg.From.ID)
	if err != nil {
		log.WithField("user_id", msg.From.ID).WithError(err).Warn("list user orders")
		return
	}
	if len(orders) == 0 {
		b.send(msg.Chat.ID, "У вас пока нет заказов.")
		return
	}
	text := "Ваши заказы:\n"
	for _, o := range orders {
		text += services.UserOrderLine(o) + "\n"
	}
	b.send(msg.Chat.ID, text)
}

func (b *Bot) handleAdminOrders(msg *tgbotapi.Message) {
	orders, err := services.OrdersForAdmin(context.Background(), msg.From.ID, b.admin)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			b.send(msg.Chat.ID, "У вас нет доступа к этой команде.")
			return
		}
		log.WithField("user_id", msg.From.ID).WithError(err).Warn("list all orders")
		return
	}
	if len(orders) == 0 {
		b.send(msg.Chat.ID, "Заказов нет.")
		return
	}
	for _, o := range orders {
		b.send(msg.Chat.ID, services.AdminOrderLine(o))
	}
}

func (b *Bot) handleAskLocation(msg *tgbotapi.Message) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("Отправить местоположение"),
		),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	b.sessions.Advance(msg.From.ID, services.SessionLocationRequested, nil)
	out := tgbotapi.NewMessage(msg.Chat.ID, "Пожалуйста, отправьте ваше местоположение для доставки.")
	out.ReplyMarkup = kb
	if _, err := b.api.Send(out); err != nil {
		log.WithField("chat_id", msg.Chat.ID).WithError(err).Warn("send location request")
	}
}

func (b *Bot) handleLocation(msg *tgbotapi.Message) {
	lat := msg.Location.Latitude
	lon := msg.Location.Longitude
	// Coordinates stay on the session only; no order row is updated.
	b.sessions.Advance(msg.From.ID, services.SessionLocationReceived, func(s *services.Session) {
		s.Lat = lat
		s.Lon = lon
		s.HasLocation = true
	})
	b.send(msg.Chat.ID, fmt.Sprintf("Ваш адрес доставки: широта %f, долгота %f.", lat, lon))
}
