package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"esbBot/internal/domain"
	"esbBot/internal/usecase/commands"
)

// Server exposes the web chat on /ws/chat and the JSON API under /api/.
// It is also the outgoing sender of the web platform: replies are written
// back to the connection that sent the command.
type Server struct {
	addr     string
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*wsClient
	handler MessageHandler

	api     *apiHandlers
	metrics http.Handler
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

type wsClient struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Config struct {
	Addr     string
	Settings SettingsManager
	Catalog  func() []commands.CommandDescriptor
	// Metrics, when set, is served on /metrics.
	Metrics http.Handler
	// AllowedOrigins lists the browser origins, besides the server's own
	// host, allowed to use the API and the web chat.
	AllowedOrigins []string
}

func (c *Config) addr() string {
	if c == nil || c.Addr == "" {
		return ":8080"
	}
	return c.Addr
}

func NewServer(cfg Config) *Server {
	origins := newOriginPolicy(cfg.AllowedOrigins)
	return &Server{
		addr: cfg.addr(),
		upgrader: websocket.Upgrader{
			CheckOrigin: origins.allows,
		},
		clients: make(map[string]*wsClient),
		api:     newAPIHandlers(cfg),
		metrics: cfg.Metrics,
	}
}

// Handler builds the HTTP handler serving every route.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/chat", func(w http.ResponseWriter, r *http.Request) {
		s.handleWS(ctx, w, r)
	})
	s.api.register(mux)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	return mux
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(ctx),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ws: shutdown error: %v", err)
		}
	}()

	log.Printf("ws: listening on %s", s.addr)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) SetHandler(h MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *Server) getHandler() MessageHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handler
}

func (s *Server) handleWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade error: %v", err)
		return
	}

	client := &wsClient{id: uuid.NewString(), conn: conn}

	s.mu.Lock()
	s.clients[client.id] = client
	clientCount := len(s.clients)
	s.mu.Unlock()

	log.Printf("ws: new connection from %s (%d active clients)", r.RemoteAddr, clientCount)

	if err := client.writeJSON(outgoingPayload{Type: "hello", ChannelID: client.id}); err != nil {
		log.Printf("ws: hello write error: %v", err)
	}

	go s.handleClient(ctx, client)
}

func (s *Server) handleClient(ctx context.Context, client *wsClient) {
	defer s.dropClient(client)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgType, data, err := client.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws: read error: %v", err)
			}
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}

		if err := s.dispatchIncoming(ctx, client.id, data); err != nil {
			log.Printf("ws: incoming dispatch error: %v", err)
		}
	}
}

func (s *Server) dropClient(client *wsClient) {
	client.conn.Close()

	s.mu.Lock()
	delete(s.clients, client.id)
	clientCount := len(s.clients)
	s.mu.Unlock()

	log.Printf("ws: connection closed (%d active clients)", clientCount)
}

type incomingPayload struct {
	Text     string `json:"text"`
	Username string `json:"username"`
}

type outgoingPayload struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
	Text      string `json:"text,omitempty"`
}

// dispatchIncoming accepts either {"text": "..."} or a raw text frame. Web
// users are trusted as admins: the API port is not meant to be public.
func (s *Server) dispatchIncoming(ctx context.Context, clientID string, data []byte) error {
	handler := s.getHandler()
	if handler == nil {
		return nil
	}

	payload := incomingPayload{}
	if err := json.Unmarshal(data, &payload); err != nil {
		payload.Text = string(data)
	}
	payload.Text = strings.TrimSpace(payload.Text)

	if payload.Text == "" {
		return fmt.Errorf("ws: empty incoming text")
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" {
		username = "web-user"
	}

	msg := domain.Message{
		Platform:        domain.PlatformWeb,
		ChannelID:       clientID,
		UserID:          clientID,
		Username:        username,
		Text:            payload.Text,
		IsPlatformOwner: true,
		IsPlatformAdmin: true,
		IsPlatformMod:   true,
	}

	return handler(ctx, msg)
}

// SendMessage writes a reply to the web client identified by channelID.
func (s *Server) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if platform != domain.PlatformWeb {
		return fmt.Errorf("ws: unsupported platform %s", platform)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	client, ok := s.clients[channelID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("ws: client %s is gone", channelID)
	}

	if err := client.writeJSON(outgoingPayload{Type: "reply", ChannelID: channelID, Text: text}); err != nil {
		log.Printf("ws: removing client due to write error: %v", err)
		s.dropClient(client)
		return err
	}
	return nil
}

var _ domain.OutgoingMessagePort = (*Server)(nil)
