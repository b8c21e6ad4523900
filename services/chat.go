package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
	store "github.com/phillip/venturelink/store"
	utils "github.com/phillip/venturelink/utils"
)

// ChannelID is the deterministic identifier of the chat for one (founder, investor, idea).
func ChannelID(founderID, investorID, ideaID string) string {
	return "chat_" + founderID + "_" + investorID + "_" + ideaID
}

type ChatManager struct {
	store *store.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewChatManager(st *store.Store, log *zap.Logger) *ChatManager {
	return &ChatManager{store: st, log: log.Named("chat"), now: time.Now}
}

// GetOrCreate returns the chat for the triple, creating an empty one the first time.
// Callers are expected to have checked mutual interest.
func (m *ChatManager) GetOrCreate(ctx context.Context, founderID, investorID, ideaID string) (models.Chat, bool) {
	m.store.Lock()
	defer m.store.Unlock()

	id := ChannelID(founderID, investorID, ideaID)
	chats := m.store.Chats.All(ctx)
	for _, ch := range chats {
		if ch.ID == id {
			return ch, false
		}
	}

	ch := models.Chat{
		ID:         id,
		FounderID:  founderID,
		InvestorID: investorID,
		IdeaID:     ideaID,
		Messages:   []models.Message{},
		CreatedAt:  m.now().UTC(),
	}
	m.store.Chats.Save(ctx, append(chats, ch))
	m.log.Info("chat created", zap.String("chat_id", id))
	return ch, true
}

// AppendMessage adds a message to an existing chat. ok is false, and nothing is
// written, when the chat does not exist.
func (m *ChatManager) AppendMessage(ctx context.Context, chatID, senderID, senderName, body string) (models.Message, bool) {
	m.store.Lock()
	defer m.store.Unlock()

	chats := m.store.Chats.All(ctx)
	for i := range chats {
		if chats[i].ID != chatID {
			continue
		}
		msg := models.Message{
			ID:         utils.NewID(),
			SenderID:   senderID,
			SenderName: senderName,
			Body:       body,
			Timestamp:  m.now().UTC(),
		}
		chats[i].Messages = append(chats[i].Messages, msg)
		m.store.Chats.Save(ctx, chats)
		return msg, true
	}
	m.log.Debug("message dropped, unknown chat", zap.String("chat_id", chatID))
	return models.Message{}, false
}

func (m *ChatManager) Get(ctx context.Context, chatID string) (models.Chat, bool) {
	return m.store.Chats.Find(ctx, func(ch models.Chat) bool { return ch.ID == chatID })
}

// ForUser lists the chats the user is a party to.
func (m *ChatManager) ForUser(ctx context.Context, userID string) []models.Chat {
	return m.store.Chats.Filter(ctx, func(ch models.Chat) bool { return ch.HasParticipant(userID) })
}
