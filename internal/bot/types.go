package bot

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shopadmin/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api      *tgbotapi.BotAPI
	store    storage.Store
	admins   map[int64]bool
	states   map[int64]*ConversationState
	statesMu sync.RWMutex
	locks    map[int64]*sync.Mutex
	locksMu  sync.Mutex
	logger   *zap.Logger
}

// ConversationState tracks the state of multi-step commands.
// Step -1 marks a completed conversation pending cleanup.
type ConversationState struct {
	Command string
	Step    int
	Data    map[string]interface{}
}

// Conversation commands
const (
	convAddProduct = "add_product"
	convAddExpense = "add_expense"
)

// add_product wizard steps
const (
	stepProductName = iota + 1
	stepProductPrice
	stepProductDescription
	stepProductStock
)

// add_expense form steps
const (
	stepExpenseMenu = iota + 1
	stepExpenseAmount
	stepExpenseDescription
	stepExpenseDate
	stepExpenseCategory
)

const conversationDone = -1

// userLock returns the mutex serializing update handling for one user.
// Updates arrive concurrently over the webhook; conversation state is
// only safe to touch while this lock is held.
func (b *Bot) userLock(userID int64) *sync.Mutex {
	b.locksMu.Lock()
	defer b.locksMu.Unlock()
	lock, ok := b.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		b.locks[userID] = lock
	}
	return lock
}

func (b *Bot) state(userID int64) (*ConversationState, bool) {
	b.statesMu.RLock()
	defer b.statesMu.RUnlock()
	state, ok := b.states[userID]
	return state, ok
}

func (b *Bot) setState(userID int64, state *ConversationState) {
	b.statesMu.Lock()
	defer b.statesMu.Unlock()
	b.states[userID] = state
}

func (b *Bot) clearState(userID int64) {
	b.statesMu.Lock()
	defer b.statesMu.Unlock()
	delete(b.states, userID)
}
