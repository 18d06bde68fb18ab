package comment

import (
	"net/http"
	"sync"
	"time"

	"nostalgic-food-map/db"
	"nostalgic-food-map/models"
	"nostalgic-food-map/repository"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
)

const (
	clientBuffer = 16
	pingInterval = 30 * time.Second
)

// SSEMessage is the data of every "comment" event.
type SSEMessage struct {
	Type    string             `json:"type"`
	Payload models.CommentView `json:"payload"`
}

// Hub fans new comments out to the stream subscribers of each post.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[chan SSEMessage]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[chan SSEMessage]struct{})}
}

// Subscribe registers a listener for postID. The returned func unregisters
// it and closes the channel.
func (h *Hub) Subscribe(postID string) (<-chan SSEMessage, func()) {
	ch := make(chan SSEMessage, clientBuffer)

	h.mu.Lock()
	if h.clients[postID] == nil {
		h.clients[postID] = make(map[chan SSEMessage]struct{})
	}
	h.clients[postID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients[postID], ch)
			if len(h.clients[postID]) == 0 {
				delete(h.clients, postID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Broadcast sends comment to every subscriber of its post. A subscriber
// whose buffer is full misses the event.
func (h *Hub) Broadcast(comment models.CommentView) {
	msg := SSEMessage{Type: "new_comment", Payload: comment}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients[comment.PostID] {
		select {
		case ch <- msg:
		default:
			utils.LogWarn(nil, "Dropping comment event for slow subscriber on post "+comment.PostID)
		}
	}
}

// Subscribers returns how many streams are open for postID.
func (h *Hub) Subscribers(postID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[postID])
}

// @Summary Stream comments of a post
// @Description Server-sent events: existing comments first, then new ones as they are posted
// @Tags comments
// @Produce text/event-stream
// @Param id path string true "Post ID"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} map[string]string "error: Invalid id"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id}/comments/stream [get]
func (h *Handler) HandleSSE(c *gin.Context) {
	postID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	exists, err := repository.PostExists(db.DB, postID)
	if err != nil {
		utils.LogError(err, "Error retrieving post in HandleSSE")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error opening stream"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// subscribe before reading history so nothing posted in between is lost
	messages, unsubscribe := h.hub.Subscribe(postID)
	defer unsubscribe()

	comments, err := repository.Comments(db.DB, postID)
	if err != nil {
		utils.LogError(err, "Error retrieving comments in HandleSSE")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error opening stream"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// a comment posted between Subscribe and the history read arrives twice
	sent := make(map[string]struct{}, len(comments))

	c.SSEvent("connected", gin.H{"status": "connected"})
	for _, comment := range comments {
		sent[comment.ID] = struct{}{}
		c.SSEvent("comment", SSEMessage{Type: "existing_comment", Payload: comment})
	}
	c.Writer.Flush()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if _, dup := sent[msg.Payload.ID]; dup {
				continue
			}
			c.SSEvent("comment", msg)
			c.Writer.Flush()
		case <-ping.C:
			c.SSEvent("ping", gin.H{})
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}
