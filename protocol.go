package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgCreate   = "create" // create room
	MsgList     = "list"   // list rooms
	MsgCheck    = "check"  // check if room exists
	MsgStart    = "start"  // host starts the match
	MsgInput    = "input"  // JSON fallback for the binary input frame
	MsgLeave    = "leave"
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgGuest    = "guest"
	MsgResume   = "resume" // token re-auth
	MsgProfile  = "profile"
)

// Server -> Client message types
const (
	MsgWelcome     = "welcome"
	MsgJoined      = "joined"
	MsgCreated     = "created" // room created, client should navigate
	MsgRooms       = "rooms"
	MsgChecked     = "checked"
	MsgStarted     = "started"
	MsgMatchEnd    = "match_end"
	MsgAchievement = "achievement"
	MsgAuthOK      = "auth_ok"
	MsgProfileData = "profile_data"
	MsgError       = "error"
)

// Envelope wraps all outgoing JSON messages with a type field. The
// per-tick snapshot travels separately as a binary msgpack frame.
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// JoinMsg is sent when a player wants to join a room
type JoinMsg struct {
	Nick   string `json:"nick"`
	RoomID string `json:"rid"`
}

// CreateMsg is sent when a player wants to create a room
type CreateMsg struct {
	Nick     string `json:"nick"`
	RoomName string `json:"rname"`
	Mode     int    `json:"mode"` // 0 = ffa, 1 = team
}

// CheckMsg is sent by a client to check if a room exists
type CheckMsg struct {
	RID string `json:"rid"`
}

// CheckedMsg is the response to a room check
type CheckedMsg struct {
	RID     string `json:"rid"`
	Exists  bool   `json:"exists"`
	Name    string `json:"name,omitempty"`
	Players int    `json:"players,omitempty"`
}

// RegisterMsg / LoginMsg carry account credentials
type RegisterMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

type LoginMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

// ResumeMsg re-authenticates with a stored token
type ResumeMsg struct {
	Token string `json:"tok"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	PlayerID int64  `json:"pid"`
	Username string `json:"u"`
	Token    string `json:"tok,omitempty"`
}

// WelcomeMsg is sent to a player when they join a room
type WelcomeMsg struct {
	Slot  int    `json:"slot"`
	Color string `json:"c"`
}

// RoomInfo is used in the room list
type RoomInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Mode    int    `json:"mode"`
	Players int    `json:"players"`
	Started bool   `json:"started"`
}

// MatchEndMsg is broadcast when a slot reaches the score limit
type MatchEndMsg struct {
	WinnerSlot int    `json:"w"`
	WinnerNick string `json:"wn"`
	Scores     []int  `json:"sc"`
	Rounds     int    `json:"r"`
}

// AchievementMsg notifies a player of an unlock
type AchievementMsg struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProfileDataMsg carries an authenticated player's persistent stats
type ProfileDataMsg struct {
	Username   string  `json:"u"`
	Wins       int     `json:"w"`
	Rounds     int     `json:"r"`
	RoundsWon  int     `json:"rw"`
	Crashes    int     `json:"cr"`
	Playtime   float64 `json:"pt"`
	WinStreak  int     `json:"ws"`
	BestStreak int     `json:"bs"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// PlayerState is the replicated per-player scalar state
type PlayerState struct {
	Slot         int           `json:"s"`
	Nick         string        `json:"n"`
	Color        string        `json:"c"`
	X            int           `json:"x"` // fixed-point
	Y            int           `json:"y"`
	Heading      int           `json:"h"`
	Alive        bool          `json:"a"`
	HasWeapon    bool          `json:"hw,omitempty"`
	WeaponSprite int           `json:"ws,omitempty"`
	WeaponAmmo   int           `json:"wa,omitempty"`
	WeaponTicks  int           `json:"wt,omitempty"`
	Effects      []EffectState `json:"e,omitempty"`
}

// EffectState is one replicated timed effect
type EffectState struct {
	Kind  int `json:"k"`
	Ticks int `json:"t"`
}

// ItemState is one replicated pickup
type ItemState struct {
	ID      int  `json:"id"`
	Sprite  int  `json:"sp"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Mystery bool `json:"m,omitempty"`
}

// PortalState is the replicated teleport pair
type PortalState struct {
	AX    int `json:"ax"`
	AY    int `json:"ay"`
	BX    int `json:"bx"`
	BY    int `json:"by"`
	Frame int `json:"f"`
}
