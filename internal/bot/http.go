package bot

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shopadmin/internal/models"
)

// orderWebhookPayload accepts the shapes the storefront and database
// webhooks send: the order under "record", under "data", or at the top
// level.
type orderWebhookPayload struct {
	Record *models.Order `json:"record"`
	Data   *models.Order `json:"data"`
	models.Order
}

func (p *orderWebhookPayload) order() *models.Order {
	if p.Record != nil {
		return p.Record
	}
	if p.Data != nil {
		return p.Data
	}
	return &p.Order
}

// RegisterRoutes mounts the bot's HTTP endpoints on mux.
func (b *Bot) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", b.handleRoot)
	mux.HandleFunc("/health", b.handleHealth)
	mux.HandleFunc("/telegram-webhook", b.handleTelegramWebhook)
	mux.HandleFunc("/notify-order", b.handleNotifyOrder)
}

func (b *Bot) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Shop Admin Bot is running\n"))
}

func (b *Bot) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (b *Bot) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		b.logger.Warn("invalid telegram update", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// Telegram retries on slow responses; ack first, process after.
	go b.HandleUpdate(update)
	w.WriteHeader(http.StatusOK)
}

func (b *Bot) handleNotifyOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload orderWebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		b.logger.Warn("invalid order payload", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	order := payload.order()
	if order.ID == "" && order.OrderNumber == "" {
		http.Error(w, "missing order data", http.StatusBadRequest)
		return
	}

	b.SendOrderNotification(order)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "status": "sent"})
}
