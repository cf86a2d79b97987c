// Package stubserver is an in-memory implementation of the chat backend's REST API.
// It exists so that the client can be exercised end to end in tests and demos
// without the real backend.
package stubserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"ragchat/client/internal/model"
)

type account struct {
	user     model.User
	password string
}

type thread struct {
	model.Thread
	messages []model.Message
}

// Backend holds the stub's state. All exported fields may be set before the first
// request; hooks are called without the state lock held.
type Backend struct {
	// Reply builds the assistant answer for a user message.
	Reply func(text string) string
	// BeforeReply runs after the user message is stored and before the reply is
	// written. Tests block in it to observe the optimistic window.
	BeforeReply func(threadID, text string)
	// EchoUserMessage makes send replies include the persisted user message.
	EchoUserMessage bool
	// DisableMe makes /auth/me fail with 500 so clients fall back to probing.
	DisableMe bool

	mu        sync.Mutex
	accounts  map[string]*account // by email
	tokens    map[string]string   // token -> email
	threads   map[string]*thread
	order     []string // thread IDs, newest first
	documents []model.Document
	failures  map[string]failure
	calls     map[string]int
}

type failure struct {
	status int
	detail string
}

// New creates an empty stub backend.
func New() *Backend {
	return &Backend{
		Reply:    func(text string) string { return "echo: " + text },
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		threads:  map[string]*thread{},
		failures: map[string]failure{},
		calls:    map[string]int{},
	}
}

// Handler returns the chi router serving the REST API.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(b.countAndFail)

	r.Post("/auth/login", b.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(b.authenticate)

		r.Get("/auth/me", b.handleMe)

		r.Get("/threads", b.handleListThreads)
		r.Post("/threads", b.handleCreateThread)
		r.Patch("/threads/{threadID}", b.handleRenameThread)
		r.Delete("/threads/{threadID}", b.handleDeleteThread)

		r.Get("/chat/{threadID}/messages", b.handleListMessages)
		r.Get("/chat/{threadID}/messages/count", b.handleCountMessages)
		r.Post("/chat/{threadID}/message", b.handleSendMessage)
		r.Delete("/chat/messages/{messageID}", b.handleDeleteMessage)

		r.Route("/admin", func(r chi.Router) {
			r.Use(b.requireAdmin)
			r.Get("/users", b.handleListUsers)
			r.Post("/users", b.handleCreateUser)
			r.Delete("/users/{userID}", b.handleDeleteUser)
			r.Patch("/users/{userID}/toggle-status", b.handleToggleUser)
			r.Get("/users/{userID}/chat-history", b.handleChatHistory)
			r.Get("/documents", b.handleListDocuments)
			r.Post("/documents/upload", b.handleUploadDocument)
			r.Delete("/documents/{docID}", b.handleDeleteDocument)
		})
	})

	return r
}

// --- Setup helpers ---

// AddUser registers an account and returns it.
func (b *Backend) AddUser(email, password string, role model.Role) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(email, password, role)
}

func (b *Backend) addUserLocked(email, password string, role model.Role) model.User {
	u := model.User{ID: uuid.NewString(), Email: email, Role: role, IsActive: true, CreatedAt: model.Now()}
	b.accounts[email] = &account{user: u, password: password}
	return u
}

// IssueToken returns a valid token for an existing account.
func (b *Backend) IssueToken(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	tok := uuid.NewString()
	b.tokens[tok] = email
	return tok
}

// AddThread creates a thread owned by email. Threads are listed newest first.
func (b *Backend) AddThread(email, id, title string) model.Thread {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addThreadLocked(email, id, title)
}

func (b *Backend) addThreadLocked(email, id, title string) model.Thread {
	if id == "" {
		id = uuid.NewString()
	}
	owner := ""
	if acc, ok := b.accounts[email]; ok {
		owner = acc.user.ID
	}
	now := model.Now()
	t := &thread{Thread: model.Thread{ID: id, Title: title, OwnerUserID: owner, CreatedAt: now, UpdatedAt: now}}
	b.threads[id] = t
	b.order = append([]string{id}, b.order...)
	return t.Thread
}

// AddMessage appends a stored message to a thread.
func (b *Backend) AddMessage(threadID string, role model.MessageRole, content string) model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addMessageLocked(threadID, role, content, nil)
}

func (b *Backend) addMessageLocked(threadID string, role model.MessageRole, content string, refs []model.RetrievalRef) model.Message {
	msg := model.Message{
		ID:            uuid.NewString(),
		ThreadID:      threadID,
		Role:          role,
		Content:       content,
		CreatedAt:     model.Now(),
		RetrievalRefs: refs,
	}
	t := b.threads[threadID]
	t.messages = append(t.messages, msg)
	return msg
}

// AddDocument registers an uploaded document.
func (b *Backend) AddDocument(filename string) model.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addDocumentLocked(filename, 0)
}

func (b *Backend) addDocumentLocked(filename string, size int64) model.Document {
	id := uuid.NewString()
	doc := model.Document{ID: id, DocID: id, Filename: filename, SizeBytes: size, PageCount: 1, CreatedAt: model.Now()}
	b.documents = append(b.documents, doc)
	return doc
}

// Fail makes every request matching "METHOD /route/pattern" fail with status and
// detail until Recover is called.
func (b *Backend) Fail(route string, status int, detail string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, detail: detail}
}

// Recover removes a failure installed with Fail.
func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

// Calls returns how many requests hit "METHOD /route/pattern".
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// TotalCalls returns the number of requests served.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// ThreadIDs returns the stored thread IDs in list order.
func (b *Backend) ThreadIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.order...)
}

// Messages returns the stored messages of a thread.
func (b *Backend) Messages(threadID string) []model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.threads[threadID]
	if !ok {
		return nil
	}
	return append([]model.Message(nil), t.messages...)
}

// User returns the stored account for email.
func (b *Backend) User(email string) (model.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[email]
	if !ok {
		return model.User{}, false
	}
	return acc.user, true
}

// --- Middleware ---

type ctxKey struct{}

// routeKey resolves the chi pattern for the request, e.g. "GET /threads/{threadID}".
func routeKey(r *http.Request) string {
	rctx := chi.NewRouteContext()
	if chi.RouteContext(r.Context()) != nil {
		if routes := chi.RouteContext(r.Context()).Routes; routes != nil && routes.Match(rctx, r.Method, r.URL.Path) {
			return r.Method + " " + rctx.RoutePattern()
		}
	}
	return r.Method + " " + r.URL.Path
}

func (b *Backend) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r)
		b.mu.Lock()
		b.calls[key]++
		f, failing := b.failures[key]
		b.mu.Unlock()

		if failing {
			respondWithDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		email, ok := b.tokens[tok]
		var acc *account
		if ok {
			acc = b.accounts[email]
		}
		b.mu.Unlock()

		if !ok || acc == nil || !acc.user.IsActive {
			respondWithDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithUser(r, acc.user)))
	})
}

func (b *Backend) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != model.RoleAdmin {
			respondWithDetail(w, http.StatusForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Handlers: auth ---

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithDetail(w, http.StatusUnprocessableEntity, "Invalid request payload")
		return
	}
	b.mu.Lock()
	acc, ok := b.accounts[req.Email]
	if !ok || acc.password != req.Password || !acc.user.IsActive {
		b.mu.Unlock()
		respondWithDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	tok := uuid.NewString()
	b.tokens[tok] = req.Email
	b.mu.Unlock()

	respondWithJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	if b.DisableMe {
		respondWithDetail(w, http.StatusInternalServerError, "identity lookup unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, currentUser(r))
}

// --- Handlers: threads and chat ---

func (b *Backend) ownedThread(w http.ResponseWriter, r *http.Request, threadID string) (*thread, bool) {
	user := currentUser(r)
	t, ok := b.threads[threadID]
	if !ok {
		respondWithDetail(w, http.StatusNotFound, "Thread not found")
		return nil, false
	}
	if t.OwnerUserID != user.ID && user.Role != model.RoleAdmin {
		respondWithDetail(w, http.StatusForbidden, "Not enough permissions")
		return nil, false
	}
	return t, true
}

func (b *Backend) handleListThreads(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	b.mu.Lock()
	out := []model.Thread{}
	for _, id := range b.order {
		if t := b.threads[id]; t.OwnerUserID == user.ID {
			out = append(out, t.Thread)
		}
	}
	b.mu.Unlock()
	respondWithJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Title == "" {
		req.Title = "New Chat " + time.Now().UTC().Format("2006-01-02 15:04")
	}
	b.mu.Lock()
	t := b.addThreadLocked(currentUser(r).Email, "", req.Title)
	b.mu.Unlock()
	respondWithJSON(w, http.StatusOK, t)
}

func (b *Backend) handleRenameThread(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		respondWithDetail(w, http.StatusUnprocessableEntity, "title is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.ownedThread(w, r, chi.URLParam(r, "threadID"))
	if !ok {
		return
	}
	t.Title = req.Title
	t.UpdatedAt = model.Now()
	respondWithJSON(w, http.StatusOK, t.Thread)
}

func (b *Backend) handleDeleteThread(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := chi.URLParam(r, "threadID")
	if _, ok := b.ownedThread(w, r, id); !ok {
		return
	}
	delete(b.threads, id)
	for i, existing := range b.order {
		if existing == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Thread deleted successfully"})
}

func (b *Backend) handleListMessages(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.ownedThread(w, r, chi.URLParam(r, "threadID"))
	if !ok {
		return
	}
	out := append([]model.Message{}, t.messages...)
	respondWithJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCountMessages(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.ownedThread(w, r, chi.URLParam(r, "threadID"))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"count": len(t.messages)})
}

func (b *Backend) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		respondWithDetail(w, http.StatusUnprocessableEntity, "message is required")
		return
	}
	threadID := chi.URLParam(r, "threadID")

	b.mu.Lock()
	if _, ok := b.ownedThread(w, r, threadID); !ok {
		b.mu.Unlock()
		return
	}
	userMsg := b.addMessageLocked(threadID, model.MessageRoleUser, req.Message, nil)
	reply, hook, echo := b.Reply, b.BeforeReply, b.EchoUserMessage
	b.mu.Unlock()

	if hook != nil {
		hook(threadID, req.Message)
	}
	answer := reply(req.Message)

	b.mu.Lock()
	var refs []model.RetrievalRef
	if len(b.documents) > 0 {
		doc := b.documents[0]
		refs = []model.RetrievalRef{{DocID: doc.DocID, Filename: doc.Filename, Page: 1, ChunkID: doc.DocID + "-0", Score: 0.9}}
	}
	if t, ok := b.threads[threadID]; ok {
		b.addMessageLocked(threadID, model.MessageRoleAssistant, answer, refs)
		t.UpdatedAt = model.Now()
	}
	b.mu.Unlock()

	resp := model.ChatResponse{Message: answer, RetrievalRefs: refs}
	if echo {
		resp.UserMessage = &userMsg
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (b *Backend) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "messageID")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.threads {
		for i, msg := range t.messages {
			if msg.ID != id {
				continue
			}
			if _, ok := b.ownedThread(w, r, t.ID); !ok {
				return
			}
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			respondWithJSON(w, http.StatusOK, map[string]string{"message": "Message deleted successfully"})
			return
		}
	}
	respondWithDetail(w, http.StatusNotFound, "Message not found")
}

// --- Handlers: admin ---

func (b *Backend) handleListUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	users := make([]model.User, 0, len(b.accounts))
	for _, acc := range b.accounts {
		users = append(users, acc.user)
	}
	b.mu.Unlock()
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	respondWithJSON(w, http.StatusOK, users)
}

func (b *Backend) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithDetail(w, http.StatusUnprocessableEntity, "Invalid request payload")
		return
	}
	if req.Email == "" {
		respondWithDetail(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		respondWithDetail(w, http.StatusBadRequest, "Password is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[req.Email]; exists {
		respondWithDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	u := b.addUserLocked(req.Email, req.Password, model.ParseRole(req.Role))
	respondWithJSON(w, http.StatusOK, u)
}

func (b *Backend) findAccountLocked(id string) *account {
	for _, acc := range b.accounts {
		if acc.user.ID == id {
			return acc
		}
	}
	return nil
}

func (b *Backend) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.findAccountLocked(chi.URLParam(r, "userID"))
	if acc == nil {
		respondWithDetail(w, http.StatusNotFound, "User not found")
		return
	}
	delete(b.accounts, acc.user.Email)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (b *Backend) handleToggleUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.findAccountLocked(chi.URLParam(r, "userID"))
	if acc == nil {
		respondWithDetail(w, http.StatusNotFound, "User not found")
		return
	}
	acc.user.IsActive = !acc.user.IsActive
	respondWithJSON(w, http.StatusOK, acc.user)
}

func (b *Backend) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []model.ThreadHistory{}
	for _, id := range b.order {
		t := b.threads[id]
		if t.OwnerUserID != userID {
			continue
		}
		out = append(out, model.ThreadHistory{Thread: t.Thread, Messages: append([]model.Message{}, t.messages...)})
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (b *Backend) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	docs := append([]model.Document{}, b.documents...)
	b.mu.Unlock()
	respondWithJSON(w, http.StatusOK, docs)
}

func (b *Backend) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithDetail(w, http.StatusUnprocessableEntity, "file is required")
		return
	}
	defer file.Close()

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".pdf") && !strings.HasSuffix(name, ".docx") {
		respondWithDetail(w, http.StatusBadRequest, "Only PDF (.pdf) and Word (.docx) files are allowed")
		return
	}
	size, err := io.Copy(io.Discard, file)
	if err != nil {
		respondWithDetail(w, http.StatusInternalServerError, fmt.Sprintf("PDF upload failed: %v", err))
		return
	}

	b.mu.Lock()
	doc := b.addDocumentLocked(header.Filename, size)
	b.mu.Unlock()
	respondWithJSON(w, http.StatusOK, doc)
}

func (b *Backend) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, doc := range b.documents {
		if doc.ID == id {
			b.documents = append(b.documents[:i], b.documents[i+1:]...)
			respondWithJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
			return
		}
	}
	respondWithDetail(w, http.StatusNotFound, "Document not found")
}
