package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"unimatch_backend/internal/config"
	"unimatch_backend/internal/email"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"

	"github.com/google/uuid"
)

// setTestConfig installs a config so services that read it do not try to
// load a file.
func setTestConfig() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.App.PublicURL = "http://localhost:3000"
	cfg.Upload.MaxSize = 5 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "application/pdf"}
	config.AppConfig = cfg
}

// In-memory repository fakes. They implement the repository interfaces
// faithfully enough for service-level behavior: sentinel errors, ordering
// and the active-slot rule all match the real implementations.

type fakeUserRepo struct {
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	createErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[string]*models.User),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByIDs(ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindByEmail(e string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == e {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByActivationToken(token string) (*models.User, error) {
	for _, u := range f.users {
		if u.ActivationToken != "" && u.ActivationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, err := f.FindByEmail(u.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepo) SetEmailVerified(userID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.EmailVerified = true
	u.Status = models.UserStatusActive
	u.ActivationToken = ""
	u.ActivationTokenExp = nil
	return nil
}

func (f *fakeUserRepo) SetVerificationStatus(userID string, status models.VerificationStatus) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.VerificationStatus = status
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(userID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (f *fakeUserRepo) CreateRefreshToken(t *models.RefreshToken) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	f.refreshTokens[t.Token] = t
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	t, ok := f.refreshTokens[token]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(f.refreshTokens, token)
	return nil
}

func (f *fakeUserRepo) DeleteUserRefreshTokens(userID string) error {
	for k, t := range f.refreshTokens {
		if t.UserID == userID {
			delete(f.refreshTokens, k)
		}
	}
	return nil
}

func (f *fakeUserRepo) CleanExpiredRefreshTokens() (int64, error) {
	var n int64
	for k, t := range f.refreshTokens {
		if t.ExpiresAt.Before(time.Now()) {
			delete(f.refreshTokens, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) CleanExpiredActivationTokens() (int64, error) { return 0, nil }

type fakeProfileRepo struct {
	profiles   map[string]*models.Profile // keyed by user ID
	takenNames map[string]bool
	createErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles:   make(map[string]*models.Profile),
		takenNames: make(map[string]bool),
	}
}

func (f *fakeProfileRepo) add(p *models.Profile) *models.Profile {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	f.profiles[p.UserID] = p
	return p
}

func (f *fakeProfileRepo) Create(p *models.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.profiles[p.UserID]; ok {
		return repositories.ErrProfileAlreadyExists
	}
	f.add(p)
	return nil
}

func (f *fakeProfileRepo) FindByUserID(userID string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) FindByUserIDs(userIDs []string) ([]models.Profile, error) {
	var out []models.Profile
	for _, id := range userIDs {
		if p, ok := f.profiles[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(p *models.Profile) error {
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) AnonymousNameExists(name string) (bool, error) {
	if f.takenNames[name] {
		return true, nil
	}
	for _, p := range f.profiles {
		if p.AnonymousName == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfileRepo) SetVerified(userID string) error {
	if p, ok := f.profiles[userID]; ok {
		p.IsVerified = true
	}
	return nil
}

type fakeVerificationRepo struct {
	files     map[string]*models.VerificationFile
	createErr error
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{files: make(map[string]*models.VerificationFile)}
}

func (f *fakeVerificationRepo) add(v *models.VerificationFile) *models.VerificationFile {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	f.files[v.ID] = v
	return v
}

func (f *fakeVerificationRepo) Create(v *models.VerificationFile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(v)
	return nil
}

func (f *fakeVerificationRepo) FindByID(id string) (*models.VerificationFile, error) {
	v, ok := f.files[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVerificationRepo) FindActiveByUserAndType(userID string, fileType models.FileType) (*models.VerificationFile, error) {
	for _, v := range f.files {
		if v.UserID == userID && v.FileType == fileType && v.Active() {
			cp := *v
			return &cp, nil
		}
	}
	return nil, repositories.ErrVerificationNotFound
}

func (f *fakeVerificationRepo) FindByUser(userID string) ([]models.VerificationFile, error) {
	var out []models.VerificationFile
	for _, v := range f.files {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeVerificationRepo) FindByStatus(status models.FileStatus, limit, offset int) ([]models.VerificationFile, int64, error) {
	var out []models.VerificationFile
	for _, v := range f.files {
		if v.Status == status {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeVerificationRepo) UpdateReview(id string, status models.FileStatus, reviewerID, reason string) error {
	v, ok := f.files[id]
	if !ok {
		return repositories.ErrVerificationNotFound
	}
	now := time.Now()
	v.Status = status
	v.RejectionReason = reason
	v.ReviewedAt = &now
	v.ReviewedBy = &reviewerID
	return nil
}

func (f *fakeVerificationRepo) FindRejectedBefore(cutoff time.Time) ([]models.VerificationFile, error) {
	var out []models.VerificationFile
	for _, v := range f.files {
		if v.Status == models.FileStatusRejected && v.ReviewedAt != nil && v.ReviewedAt.Before(cutoff) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVerificationRepo) Delete(id string) error {
	delete(f.files, id)
	return nil
}

type fakeMatchRepo struct {
	matches []models.Match
}

func (f *fakeMatchRepo) FindByUser(userID string) ([]models.Match, error) {
	var out []models.Match
	for _, m := range f.matches {
		if m.UserAID == userID || m.UserBID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchedAt.After(out[j].MatchedAt) })
	return out, nil
}

func (f *fakeMatchRepo) CountByUser(userID string) (int64, error) {
	ms, _ := f.FindByUser(userID)
	return int64(len(ms)), nil
}

func (f *fakeMatchRepo) FindByID(id string) (*models.Match, error) {
	for i := range f.matches {
		if f.matches[i].ID == id {
			cp := f.matches[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) Create(m *models.Match) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	f.matches = append(f.matches, *m)
	return nil
}

type fakeChatRepo struct {
	conversations map[string]*models.Conversation
	messages      map[string]*models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string]*models.ChatMessage),
	}
}

func (f *fakeChatRepo) CreateConversation(c *models.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	f.conversations[c.ID] = c
	return nil
}

func (f *fakeChatRepo) FindConversationByID(id string) (*models.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, repositories.ErrConversationNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChatRepo) FindConversationByUsers(a, b string) (*models.Conversation, error) {
	for _, c := range f.conversations {
		if (c.UserAID == a && c.UserBID == b) || (c.UserAID == b && c.UserBID == a) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrConversationNotFound
}

func (f *fakeChatRepo) FindConversationsByUser(userID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) CreateMessage(m *models.ChatMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	f.messages[m.ID] = m
	if c, ok := f.conversations[m.ConversationID]; ok {
		now := time.Now()
		c.LastMessageAt = &now
	}
	return nil
}

func (f *fakeChatRepo) FindMessageByID(id string) (*models.ChatMessage, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, repositories.ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeChatRepo) FindMessagesByConversation(conversationID string, limit, offset int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeChatRepo) CountUnread(conversationID, userID string) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepo) MarkConversationRead(conversationID, userID string) (int64, error) {
	var n int64
	now := time.Now()
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.ReceiverID == userID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepo) DeleteMessage(id string) error {
	if _, ok := f.messages[id]; !ok {
		return repositories.ErrMessageNotFound
	}
	delete(f.messages, id)
	return nil
}

type fakeModerationRepo struct {
	blocks  []models.Block
	reports map[string]*models.Report
}

func newFakeModerationRepo() *fakeModerationRepo {
	return &fakeModerationRepo{reports: make(map[string]*models.Report)}
}

func (f *fakeModerationRepo) CreateBlock(b *models.Block) error {
	exists, _ := f.BlockExists(b.BlockerID, b.BlockedID)
	if exists {
		return repositories.ErrBlockAlreadyExists
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	f.blocks = append(f.blocks, *b)
	return nil
}

func (f *fakeModerationRepo) BlockExists(blockerID, blockedID string) (bool, error) {
	for _, b := range f.blocks {
		if b.BlockerID == blockerID && b.BlockedID == blockedID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeModerationRepo) CreateReport(r *models.Report) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	f.reports[r.ID] = r
	return nil
}

func (f *fakeModerationRepo) FindReports(status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	var out []models.Report
	for _, r := range f.reports {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeModerationRepo) ResolveReport(id, resolverID string) error {
	r, ok := f.reports[id]
	if !ok || r.Status != models.ReportStatusOpen {
		return repositories.ErrReportNotFound
	}
	now := time.Now()
	r.Status = models.ReportStatusResolved
	r.ResolvedAt = &now
	r.ResolvedBy = &resolverID
	return nil
}

// fakeStorage records saves and deletes in memory.
type fakeStorage struct {
	objects map[string][]byte
	saveErr error
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[path] = data
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.objects[path]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(f.objects, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := f.objects[path]
	return ok, nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/files/" + path, nil
}

func (f *fakeStorage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://signed.example/" + path, nil
}

func (f *fakeStorage) GetSize(ctx context.Context, path string) (int64, error) {
	return int64(len(f.objects[path])), nil
}

// fakeEmailProvider captures sent activations.
type fakeEmailProvider struct {
	activations []string // recipients
	tokens      []string
	sendErr     error
	sent        chan struct{}
}

func newFakeEmailProvider() *fakeEmailProvider {
	return &fakeEmailProvider{sent: make(chan struct{}, 8)}
}

func (f *fakeEmailProvider) Send(e *email.Email) error { return f.sendErr }

func (f *fakeEmailProvider) SendActivation(to, token string) error {
	f.activations = append(f.activations, to)
	f.tokens = append(f.tokens, token)
	select {
	case f.sent <- struct{}{}:
	default:
	}
	return f.sendErr
}

func (f *fakeEmailProvider) Validate() error { return nil }

func (f *fakeEmailProvider) Close() error { return nil }

// waitForSend blocks until an activation email goes out or the deadline
// passes. Register sends asynchronously.
func (f *fakeEmailProvider) waitForSend(d time.Duration) bool {
	select {
	case <-f.sent:
		return true
	case <-time.After(d):
		return false
	}
}
