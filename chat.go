package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// chatRequest is the request body for POST /api/chat.
type chatRequest struct {
	Prompt         string `json:"prompt"          binding:"max=4000"`
	ConversationID string `json:"conversation_id"`
}

type chatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id"`
}

// chatMessage is one stored turn. Role is "user" or "bot".
type chatMessage struct {
	ConversationID string     `json:"-"          db:"conversation_id"`
	Role           string     `json:"role"       db:"role"`
	Content        string     `json:"content"    db:"content"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
}

type conversation struct {
	ID        string        `json:"id"         db:"id"`
	Title     string        `json:"title"      db:"title"`
	CreatedAt *time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at" db:"updated_at"`
	Messages  []chatMessage `json:"messages"   db:"-"`
}

/* ─── Prompt constants ───────────────────────────────────────────────── */

const chatSystemPromptFallback = `You are a friendly fitness and nutrition assistant inside a health tracking app.
Answer briefly and practically. You are not a doctor: for symptoms, injuries or medical conditions, recommend seeing a professional.`

// chatSystemPromptTemplate adds the user's day so answers can refer to it.
const chatSystemPromptTemplate = chatSystemPromptFallback + `

Today the user has eaten %.0f of a %.0f kcal goal and has %s trained.`

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

// callOpenAI sends a chat completions request and returns the content of the
// first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
func callOpenAI(ctx context.Context, cfg *Config, messages []openAIMessage) (string, error) {
	if cfg.OpenAIAPIKey == "" {
		return "", errors.New("OPENAI_API_KEY not set")
	}

	bodyBytes, err := json.Marshal(openAIRequest{
		Model:       cfg.OpenAIModel,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(cfg.OpenAIBaseURL, "/")+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.OpenAIAPIKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty reply")
	}
	return content, nil
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// chat handles POST /api/chat. Sends the prompt, after any earlier turns of
// the same conversation, to the assistant and stores both sides.
// Without a conversation_id a new conversation is started.
func (h *Handler) chat(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		apiError(c, http.StatusBadRequest, "prompt is required")
		return
	}

	conversationID := uuid.Nil
	if req.ConversationID != "" {
		id, err := uuid.Parse(req.ConversationID)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid conversation_id")
			return
		}
		conversationID = id
	}

	var history []chatMessage
	if conversationID != uuid.Nil && h.db != nil {
		var err error
		history, err = h.loadConversationMessages(c, userID, conversationID)
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "conversation not found")
			return
		}
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to fetch conversation")
			return
		}
	}

	messages := buildChatMessages(h.buildChatSystemPrompt(c, userID), history, prompt)
	reply, err := callOpenAI(c.Request.Context(), h.cfg, messages)
	if err != nil {
		log.Printf("[chat] OpenAI error: %v", err)
		apiError(c, http.StatusBadGateway, "assistant unavailable")
		return
	}

	if conversationID == uuid.Nil {
		conversationID = uuid.New()
		if h.db != nil {
			if err := h.createConversation(c, userID, conversationID, conversationTitle(prompt)); err != nil {
				log.Printf("[chat] create conversation: %v", err)
				apiError(c, http.StatusInternalServerError, "failed to save conversation")
				return
			}
		}
	}
	if h.db != nil {
		if err := h.appendMessages(c, conversationID, prompt, reply); err != nil {
			log.Printf("[chat] save messages: %v", err)
			apiError(c, http.StatusInternalServerError, "failed to save conversation")
			return
		}
	}

	c.JSON(http.StatusOK, chatResponse{Reply: reply, ConversationID: conversationID.String()})
}

// getConversations lists the user's conversations, newest first, each with
// its messages oldest first. GET /api/chat/conversations.
func (h *Handler) getConversations(c *gin.Context) {
	userID := c.GetInt("user_id")

	convs, err := queryMany[conversation](h.db, c,
		`SELECT id::text AS id, title, created_at, updated_at
		 FROM conversations WHERE user_id = @userID
		 ORDER BY updated_at DESC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch conversations")
		return
	}

	msgs, err := queryMany[chatMessage](h.db, c,
		`SELECT m.conversation_id::text AS conversation_id, m.role, m.content, m.created_at
		 FROM messages m JOIN conversations cv ON cv.id = m.conversation_id
		 WHERE cv.user_id = @userID
		 ORDER BY m.created_at, m.id`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, attachMessages(convs, msgs))
}

// attachMessages distributes msgs onto their conversations. Every
// conversation gets a non-nil slice so JSON shows [] rather than null.
func attachMessages(convs []conversation, msgs []chatMessage) []conversation {
	if convs == nil {
		return []conversation{}
	}
	byID := make(map[string]int, len(convs))
	for i := range convs {
		convs[i].Messages = []chatMessage{}
		byID[convs[i].ID] = i
	}
	for _, m := range msgs {
		if i, ok := byID[m.ConversationID]; ok {
			convs[i].Messages = append(convs[i].Messages, m)
		}
	}
	return convs
}

/* ─── Helpers ────────────────────────────────────────────────────────── */

// buildChatMessages maps stored turns onto OpenAI roles and appends prompt.
func buildChatMessages(system string, history []chatMessage, prompt string) []openAIMessage {
	out := make([]openAIMessage, 0, len(history)+2)
	out = append(out, openAIMessage{Role: "system", Content: system})
	for _, m := range history {
		role := "user"
		if m.Role == "bot" {
			role = "assistant"
		}
		out = append(out, openAIMessage{Role: role, Content: m.Content})
	}
	return append(out, openAIMessage{Role: "user", Content: prompt})
}

// conversationTitle is the prompt's first line, cut to 60 runes.
func conversationTitle(prompt string) string {
	title, _, _ := strings.Cut(prompt, "\n")
	title = strings.TrimSpace(title)
	if r := []rune(title); len(r) > 60 {
		title = string(r[:60]) + "…"
	}
	return title
}

// buildChatSystemPrompt adds today's calories and training to the system
// prompt. Falls back to the generic prompt when the day can't be loaded.
func (h *Handler) buildChatSystemPrompt(c *gin.Context, userID int) string {
	if h.db == nil {
		return chatSystemPromptFallback
	}
	p, err := h.loadProfile(c, userID)
	if err != nil {
		return chatSystemPromptFallback
	}
	summary, err := h.loadDailySummary(c, userID, h.today())
	if err != nil {
		return chatSystemPromptFallback
	}
	trained := "not"
	if summary.TrainingCompleted {
		trained = "already"
	}
	return fmt.Sprintf(chatSystemPromptTemplate,
		summary.CaloriesConsumed, p.calorieGoal(h.cfg.DefaultCalorieGoal), trained)
}

// loadConversationMessages returns the conversation's turns, oldest first.
// pgx.ErrNoRows means the conversation doesn't exist or isn't the user's.
func (h *Handler) loadConversationMessages(ctx context.Context, userID int, id uuid.UUID) ([]chatMessage, error) {
	var owner int
	err := h.db.QueryRow(ctx, "SELECT user_id FROM conversations WHERE id = @id",
		pgx.NamedArgs{"id": id.String()}).Scan(&owner)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, pgx.ErrNoRows
	}
	return queryMany[chatMessage](h.db, ctx,
		`SELECT conversation_id::text AS conversation_id, role, content, created_at
		 FROM messages WHERE conversation_id = @id
		 ORDER BY created_at, id`,
		pgx.NamedArgs{"id": id.String()})
}

func (h *Handler) createConversation(ctx context.Context, userID int, id uuid.UUID, title string) error {
	_, err := h.db.Exec(ctx,
		"INSERT INTO conversations (id, user_id, title) VALUES (@id, @userID, @title)",
		pgx.NamedArgs{"id": id.String(), "userID": userID, "title": title})
	return err
}

// appendMessages stores one exchange and bumps the conversation's updated_at.
func (h *Handler) appendMessages(ctx context.Context, id uuid.UUID, prompt, reply string) error {
	return pgx.BeginFunc(ctx, h.db, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{"id": id.String(), "prompt": prompt, "reply": reply}
		if _, err := tx.Exec(ctx,
			`INSERT INTO messages (conversation_id, role, content)
			 VALUES (@id, 'user', @prompt), (@id, 'bot', @reply)`, args); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, "UPDATE conversations SET updated_at = now() WHERE id = @id", args)
		return err
	})
}
