package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 100 // steering updates arrive at tick-ish rates
	maxNickLen        = 16
)

// Client represents a WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	roomID     string
	slot       int // seat in the room, -1 while unseated/spectating
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
	// Auth state
	authPlayerID int64  // 0 = unauthenticated/guest
	authUsername string // "" = unauthenticated
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		slot:       -1,
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		// Binary input messages: 2 bytes [0x01, flags]
		if msgType == websocket.BinaryMessage && len(message) == 2 && message[0] == 0x01 {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
// Prefixes with 0xFF marker byte so WritePump can distinguish from text
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF // binary marker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgList:
		c.handleList()
	case MsgCreate:
		c.handleCreate(env.D)
	case MsgJoin:
		c.handleJoin(env.D)
	case MsgStart:
		c.handleStart()
	case MsgInput:
		c.handleInput(env.D)
	case MsgLeave:
		c.handleLeave()
	case MsgCheck:
		c.handleCheck(env.D)
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgGuest:
		c.handleGuest()
	case MsgResume:
		c.handleResume(env.D)
	case MsgProfile:
		c.handleProfile()
	}
}

func (c *Client) handleList() {
	rooms := c.hub.rooms.ListRooms()
	c.SendJSON(Envelope{T: MsgRooms, Data: rooms})
}

func cleanNick(nick string) string {
	if nick == "" {
		nick = "Cycle"
	}
	if len(nick) > maxNickLen {
		nick = nick[:maxNickLen]
	}
	return nick
}

func (c *Client) handleCreate(data json.RawMessage) {
	var msg CreateMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	nick := cleanNick(msg.Nick)
	rname := msg.RoomName
	if rname == "" {
		rname = "The Grid"
	}
	if len(rname) > 30 {
		rname = rname[:30]
	}

	mode := GameMode(msg.Mode)
	if mode != ModeFFA && mode != ModeTeam {
		mode = ModeFFA
	}
	room := c.hub.rooms.CreateRoom(rname, mode, c, nick)
	if room == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "too many active rooms"}})
		return
	}

	c.roomID = room.ID
	c.slot = 0
	c.SendJSON(Envelope{T: MsgCreated, Data: map[string]string{"rid": room.ID}})
	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{Slot: 0, Color: playerColors[0]}})
}

func (c *Client) handleJoin(data json.RawMessage) {
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	nick := cleanNick(msg.Nick)

	room := c.hub.rooms.GetRoom(msg.RoomID)
	if room == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "room not found"}})
		return
	}

	slot := room.Join(c, nick)
	c.roomID = room.ID
	c.slot = slot

	c.SendJSON(Envelope{T: MsgJoined, Data: map[string]string{"rid": room.ID}})
	color := ""
	if slot >= 0 {
		color = playerColors[slot]
	}
	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{Slot: slot, Color: color}})
}

func (c *Client) handleStart() {
	if c.roomID == "" {
		return
	}
	room := c.hub.rooms.GetRoom(c.roomID)
	if room == nil {
		return
	}
	if !room.Start(c) {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "cannot start match"}})
		return
	}
	c.SendJSON(Envelope{T: MsgStarted})
}

// handleBinaryInput decodes a compact 2-byte binary input message
func (c *Client) handleBinaryInput(msg []byte) {
	if c.roomID == "" || c.slot < 0 {
		return
	}
	flags := msg[1]
	input := Input{
		Left:   flags&0x01 != 0,
		Right:  flags&0x02 != 0,
		Action: flags&0x04 != 0,
	}
	room := c.hub.rooms.GetRoom(c.roomID)
	if room == nil {
		return
	}
	room.SetInputFrom(c, input)
}

func (c *Client) handleInput(data json.RawMessage) {
	if c.roomID == "" || c.slot < 0 {
		return
	}
	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	room := c.hub.rooms.GetRoom(c.roomID)
	if room == nil {
		return
	}
	room.SetInputFrom(c, input)
}

func (c *Client) handleCheck(data json.RawMessage) {
	var msg CheckMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room := c.hub.rooms.GetRoom(msg.RID)
	if room == nil {
		c.SendJSON(Envelope{T: MsgChecked, Data: CheckedMsg{RID: msg.RID, Exists: false}})
		return
	}
	c.SendJSON(Envelope{T: MsgChecked, Data: CheckedMsg{
		RID:     msg.RID,
		Exists:  true,
		Name:    room.Name,
		Players: room.PlayerCount(),
	}})
}

func (c *Client) handleLeave() {
	if c.roomID != "" {
		c.hub.rooms.RemoveClient(c.roomID, c)
		c.roomID = ""
		c.slot = -1
	}
}

func (c *Client) handleRegister(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authPlayerID = id
	c.authUsername = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    token,
		Username: msg.Username,
		PlayerID: id,
	}})
}

func (c *Client) handleLogin(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authPlayerID = id
	c.authUsername = msg.Username
	if c.hub.analytics != nil {
		c.hub.analytics.Track(EvtLogin, id, "", "")
	}
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    token,
		Username: msg.Username,
		PlayerID: id,
	}})
}

func (c *Client) handleGuest() {
	if c.hub.db == nil {
		return
	}
	name := GenerateGuestName()
	id, err := c.hub.db.CreateGuest(name)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "could not create guest"}})
		return
	}
	c.authPlayerID = id
	c.authUsername = name
	if c.hub.analytics != nil {
		c.hub.analytics.Track(EvtGuest, id, "", "")
	}
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Username: name, PlayerID: id}})
}

func (c *Client) handleResume(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg ResumeMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "invalid token"}})
		return
	}
	c.authPlayerID = id
	c.authUsername = username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    msg.Token,
		Username: username,
		PlayerID: id,
	}})
}

func (c *Client) handleProfile() {
	if c.hub.db == nil || c.authPlayerID == 0 {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "not authenticated"}})
		return
	}
	stats, err := c.hub.db.GetStats(c.authPlayerID)
	if err != nil || stats == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "profile not found"}})
		return
	}
	c.SendJSON(Envelope{T: MsgProfileData, Data: ProfileDataMsg{
		Username:   c.authUsername,
		Wins:       stats.Wins,
		Rounds:     stats.Rounds,
		RoundsWon:  stats.RoundsWon,
		Crashes:    stats.Crashes,
		Playtime:   stats.Playtime,
		WinStreak:  stats.WinStreak,
		BestStreak: stats.BestStreak,
	}})
}
