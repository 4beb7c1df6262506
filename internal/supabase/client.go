package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/duetchat/backend/internal/config"
	"github.com/duetchat/backend/internal/models"
	"github.com/google/uuid"
)

// Client is a wrapper around the Supabase REST API.
// It uses the service role key for backend operations with elevated privileges.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Supabase client with the given configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.SupabaseURL,
		apiKey:  cfg.SupabaseKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// doRequest executes an HTTP request to the Supabase REST API.
// It automatically adds authentication headers and handles the response.
func (c *Client) doRequest(method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, endpoint)
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Add Supabase authentication headers
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// CreateMessage inserts a new message and returns the stored row with its
// database-assigned ID and timestamp.
func (c *Client) CreateMessage(req models.SendMessageRequest) (*models.Message, error) {
	if req.MessageType == models.MessageTypeText && (req.Content == nil || *req.Content == "") {
		return nil, fmt.Errorf("text content is required for text messages")
	}

	msg := models.Message{
		ID:            uuid.New().String(),
		SenderID:      req.SenderID,
		SenderName:    req.SenderName,
		SenderEmoji:   req.SenderEmoji,
		Content:       req.Content,
		MessageType:   req.MessageType,
		FileID:        req.FileID,
		FileURL:       req.FileURL,
		FileName:      req.FileName,
		VoiceDuration: req.VoiceDuration,
		ReplyToID:     req.ReplyToID,
		CreatedAt:     time.Now().UTC(),
		Seen:          false,
	}

	respBody, err := c.doRequest("POST", "messages", msg)
	if err != nil {
		return nil, err
	}

	var created []models.Message
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("failed to parse created message: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("message insert returned no rows")
	}

	return &created[0], nil
}

// ListMessages retrieves the most recent messages with their reactions,
// returned in chronological order.
func (c *Client) ListMessages(limit int) ([]models.Message, error) {
	endpoint := fmt.Sprintf("messages?select=*,reactions(*)&order=createdAt.desc&limit=%d", limit)
	respBody, err := c.doRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := json.Unmarshal(respBody, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// Query is newest-first for the limit; clients want oldest-first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// MarkSeen flags a message as seen. Safe to call repeatedly.
func (c *Client) MarkSeen(messageID string) error {
	data := map[string]interface{}{"seen": true}
	endpoint := fmt.Sprintf("messages?id=eq.%s", messageID)
	_, err := c.doRequest("PATCH", endpoint, data)
	return err
}

// EditMessage updates a message's content. The senderId filter enforces
// ownership at the database: editing someone else's message matches no rows.
func (c *Client) EditMessage(messageID, userID, content string) error {
	data := map[string]interface{}{
		"content":  content,
		"isEdited": true,
		"editedAt": time.Now().UTC(),
	}
	endpoint := fmt.Sprintf("messages?id=eq.%s&senderId=eq.%s", messageID, userID)
	respBody, err := c.doRequest("PATCH", endpoint, data)
	if err != nil {
		return err
	}

	var updated []models.Message
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return fmt.Errorf("failed to parse edited message: %w", err)
	}
	if len(updated) == 0 {
		return fmt.Errorf("message not found or not owned by sender")
	}
	return nil
}

// DeleteMessage removes a message and its reactions. Ownership is enforced
// the same way as EditMessage.
func (c *Client) DeleteMessage(messageID, userID string) error {
	// Reactions reference the message and must go first
	endpoint := fmt.Sprintf("reactions?messageId=eq.%s", messageID)
	if _, err := c.doRequest("DELETE", endpoint, nil); err != nil {
		return fmt.Errorf("failed to delete reactions: %w", err)
	}

	endpoint = fmt.Sprintf("messages?id=eq.%s&senderId=eq.%s", messageID, userID)
	respBody, err := c.doRequest("DELETE", endpoint, nil)
	if err != nil {
		return err
	}

	var deleted []models.Message
	if err := json.Unmarshal(respBody, &deleted); err != nil {
		return fmt.Errorf("failed to parse deleted message: %w", err)
	}
	if len(deleted) == 0 {
		return fmt.Errorf("message not found or not owned by sender")
	}
	return nil
}

// ListReactions retrieves all reactions for a message in creation order.
func (c *Client) ListReactions(messageID string) ([]models.Reaction, error) {
	endpoint := fmt.Sprintf("reactions?messageId=eq.%s&order=createdAt.asc&select=*", messageID)
	respBody, err := c.doRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var reactions []models.Reaction
	if err := json.Unmarshal(respBody, &reactions); err != nil {
		return nil, fmt.Errorf("failed to parse reactions: %w", err)
	}
	if reactions == nil {
		reactions = []models.Reaction{}
	}
	return reactions, nil
}

// ToggleReaction applies the reaction rules for a (message, user) pair:
// same emoji again removes it, a different emoji replaces the existing one,
// no existing reaction inserts a new row. Returns the full post-state list,
// which clients apply wholesale.
func (c *Client) ToggleReaction(messageID, userID, emoji string) ([]models.Reaction, error) {
	endpoint := fmt.Sprintf("reactions?messageId=eq.%s&userId=eq.%s&select=*", messageID, userID)
	respBody, err := c.doRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var existing []models.Reaction
	if err := json.Unmarshal(respBody, &existing); err != nil {
		return nil, fmt.Errorf("failed to parse reactions: %w", err)
	}

	switch {
	case len(existing) > 0 && existing[0].Emoji == emoji:
		// Toggle off
		endpoint = fmt.Sprintf("reactions?id=eq.%s", existing[0].ID)
		if _, err := c.doRequest("DELETE", endpoint, nil); err != nil {
			return nil, err
		}
	case len(existing) > 0:
		// Replace with the new emoji
		endpoint = fmt.Sprintf("reactions?id=eq.%s", existing[0].ID)
		data := map[string]interface{}{"emoji": emoji}
		if _, err := c.doRequest("PATCH", endpoint, data); err != nil {
			return nil, err
		}
	default:
		reaction := models.Reaction{
			ID:        uuid.New().String(),
			MessageID: messageID,
			UserID:    userID,
			Emoji:     emoji,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := c.doRequest("POST", "reactions", reaction); err != nil {
			return nil, err
		}
	}

	return c.ListReactions(messageID)
}
