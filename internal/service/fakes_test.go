package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/crypto"
	"github.com/MKhiriev/go-brainstorm/models"
)

// Hand-written fakes for tests that reach unexported fields. Tests in
// package service_test use the generated mocks from internal/mock.

const testEncryptionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestCodec() crypto.Codec {
	codec, err := crypto.NewFieldCodec(testEncryptionKey)
	if err != nil {
		panic(err)
	}
	return codec
}

type fixedIDs struct {
	ids []string
	n   int
}

func (f *fixedIDs) Generate() string {
	if f.n >= len(f.ids) {
		return "id-overflow"
	}
	id := f.ids[f.n]
	f.n++
	return id
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn func(ctx context.Context, email string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.UserID = 1
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ConversationRepository
// ─────────────────────────────────────────────

type mockConversationRepository struct {
	createFn      func(ctx context.Context, c models.CipheredConversation) (models.CipheredConversation, error)
	listFn        func(ctx context.Context, userID int64) ([]models.CipheredConversation, error)
	getFn         func(ctx context.Context, userID int64, id string) (models.CipheredConversation, error)
	updateTitleFn func(ctx context.Context, userID int64, id, title string) error
	deleteFn      func(ctx context.Context, userID int64, id string) error
}

func (m *mockConversationRepository) CreateConversation(ctx context.Context, c models.CipheredConversation) (models.CipheredConversation, error) {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	return c, nil
}

func (m *mockConversationRepository) ListConversations(ctx context.Context, userID int64) ([]models.CipheredConversation, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockConversationRepository) GetConversation(ctx context.Context, userID int64, id string) (models.CipheredConversation, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return models.CipheredConversation{}, nil
}

func (m *mockConversationRepository) UpdateConversationTitle(ctx context.Context, userID int64, id, title string) error {
	if m.updateTitleFn != nil {
		return m.updateTitleFn(ctx, userID, id, title)
	}
	return nil
}

func (m *mockConversationRepository) DeleteConversation(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.NoteRepository
// ─────────────────────────────────────────────

type mockNoteRepository struct {
	createFn func(ctx context.Context, n models.CipheredNote) (models.CipheredNote, error)
	listFn   func(ctx context.Context, userID int64) ([]models.CipheredNote, error)
	getFn    func(ctx context.Context, userID int64, id string) (models.CipheredNote, error)
	deleteFn func(ctx context.Context, userID int64, id string) error
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, n models.CipheredNote) (models.CipheredNote, error) {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	n.CreatedAt = time.Now()
	return n, nil
}

func (m *mockNoteRepository) ListNotes(ctx context.Context, userID int64) ([]models.CipheredNote, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNoteRepository) GetNote(ctx context.Context, userID int64, id string) (models.CipheredNote, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return models.CipheredNote{}, nil
}

func (m *mockNoteRepository) DeleteNote(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.UsageRepository
// ─────────────────────────────────────────────

type mockUsageRepository struct {
	recordFn  func(ctx context.Context, record models.UsageRecord) (models.UsageRecord, error)
	summaryFn func(ctx context.Context, userID int64, monthStart time.Time) (models.UsageSummary, error)
}

func (m *mockUsageRepository) RecordUsage(ctx context.Context, record models.UsageRecord) (models.UsageRecord, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, record)
	}
	return record, nil
}

func (m *mockUsageRepository) UsageSummary(ctx context.Context, userID int64, monthStart time.Time) (models.UsageSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, userID, monthStart)
	}
	return models.UsageSummary{}, nil
}

// ─────────────────────────────────────────────
// Mock: Completer
// ─────────────────────────────────────────────

type mockCompleter struct {
	completeFn func(ctx context.Context, messages []models.Message, jsonMode bool) (string, error)
	calls      int
}

func (m *mockCompleter) Complete(ctx context.Context, messages []models.Message, jsonMode bool) (string, error) {
	m.calls++
	if m.completeFn != nil {
		return m.completeFn(ctx, messages, jsonMode)
	}
	return "", nil
}
