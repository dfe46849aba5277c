package services

import (
	"context"
	"testing"

	"unimatch_backend/internal/models"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	chatRepo    *fakeChatRepo
	profileRepo *fakeProfileRepo
	svc         ChatService
	alice       string
	bob         string
	conv        *models.Conversation
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	setTestConfig()
	f := &chatFixture{
		chatRepo:    newFakeChatRepo(),
		profileRepo: newFakeProfileRepo(),
		alice:       "alice-id",
		bob:         "bob-id",
	}
	f.svc = NewChatService(f.chatRepo, f.profileRepo)

	f.conv = &models.Conversation{UserAID: f.alice, UserBID: f.bob}
	require.NoError(t, f.chatRepo.CreateConversation(f.conv))

	f.profileRepo.add(&models.Profile{UserID: f.bob, AnonymousName: "boldwolf417", AvatarGlyph: "🦊"})
	f.profileRepo.add(&models.Profile{UserID: f.alice, AnonymousName: "swiftfox123", AvatarGlyph: "🦋"})
	return f
}

func TestSendAndListMessages(t *testing.T) {
	f := newChatFixture(t)

	sent, err := f.svc.SendMessage(context.Background(), f.alice, f.conv.ID, &dto.SendMessageRequest{Content: "hey!"})
	require.NoError(t, err)
	assert.Equal(t, f.alice, sent.SenderID)
	assert.False(t, sent.IsRead)

	msgs, err := f.svc.GetMessages(context.Background(), f.bob, f.conv.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, msgs.Messages, 1)
	assert.Equal(t, "hey!", msgs.Messages[0].Content)
}

func TestSendMessageNotParticipant(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.SendMessage(context.Background(), "stranger", f.conv.ID, &dto.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.SendMessage(context.Background(), f.alice, "missing", &dto.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrConversationNotFound)
}

func TestListConversationsShowsPartner(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.svc.SendMessage(context.Background(), f.bob, f.conv.ID, &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	resp, err := f.svc.ListConversations(context.Background(), f.alice)
	require.NoError(t, err)
	require.Len(t, resp.Conversations, 1)

	conv := resp.Conversations[0]
	assert.Equal(t, f.bob, conv.PartnerID)
	assert.Equal(t, "boldwolf417", conv.PartnerName)
	assert.Equal(t, "🦊", conv.PartnerAvatar)
	assert.Equal(t, int64(1), conv.UnreadCount)
}

func TestMarkRead(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.svc.SendMessage(context.Background(), f.bob, f.conv.ID, &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkRead(context.Background(), f.alice, f.conv.ID))

	unread, err := f.chatRepo.CountUnread(f.conv.ID, f.alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestMarkReadNotParticipant(t *testing.T) {
	f := newChatFixture(t)
	assert.ErrorIs(t, f.svc.MarkRead(context.Background(), "stranger", f.conv.ID), apperrors.ErrNotParticipant)
}

func TestDeleteMessageBySender(t *testing.T) {
	f := newChatFixture(t)
	sent, err := f.svc.SendMessage(context.Background(), f.alice, f.conv.ID, &dto.SendMessageRequest{Content: "oops"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteMessage(context.Background(), f.alice, sent.ID))

	msgs, err := f.svc.GetMessages(context.Background(), f.alice, f.conv.ID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs.Messages)
}

func TestDeleteMessageByReceiverForbidden(t *testing.T) {
	f := newChatFixture(t)
	sent, err := f.svc.SendMessage(context.Background(), f.alice, f.conv.ID, &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	err = f.svc.DeleteMessage(context.Background(), f.bob, sent.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotMessageSender)

	// The row stays.
	msgs, err := f.svc.GetMessages(context.Background(), f.bob, f.conv.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, msgs.Messages, 1)
}

func TestDeleteMessageUnknown(t *testing.T) {
	f := newChatFixture(t)
	err := f.svc.DeleteMessage(context.Background(), f.alice, "missing")
	assert.ErrorIs(t, err, apperrors.ErrMessageNotFound)
}
