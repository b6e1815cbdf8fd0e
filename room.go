package main

import (
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

const maxRooms = 100

// Room is one joinable match: at most MaxPlayers seated cycles plus
// any number of spectators. The room owns the authoritative Game once
// the host starts it, and keeps a follower Mirror so late joiners can
// be seated with the full trail state.
type Room struct {
	ID   string
	Name string
	Mode GameMode

	mu      sync.Mutex
	clients map[*Client]int // client -> slot, -1 for spectators
	nicks   []string
	host    *Client

	game    *Game
	mirror  *Mirror
	inputs  [MaxPlayers]Input
	started bool
	stop    chan struct{}

	db        *DB
	analytics *Analytics
	ended     bool // match result persisted
	lastLevel int  // rotation index whose obstacles are loaded
}

// RoomManager handles creation and lookup of rooms
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	db        *DB
	analytics *Analytics
}

// NewRoomManager creates a new RoomManager
func NewRoomManager(db *DB, analytics *Analytics) *RoomManager {
	return &RoomManager{
		rooms:     make(map[string]*Room),
		db:        db,
		analytics: analytics,
	}
}

// CreateRoom creates a new room with the creator seated in slot 0.
// Returns nil if the room limit is reached.
func (rm *RoomManager) CreateRoom(name string, mode GameMode, host *Client, nick string) *Room {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if len(rm.rooms) >= maxRooms {
		return nil
	}

	room := &Room{
		ID:        GenerateID(4),
		Name:      name,
		Mode:      mode,
		clients:   make(map[*Client]int),
		host:      host,
		db:        rm.db,
		analytics: rm.analytics,
	}
	room.clients[host] = 0
	room.nicks = []string{nick}
	rm.rooms[room.ID] = room
	return room
}

// GetRoom returns a room by ID
func (rm *RoomManager) GetRoom(id string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[id]
}

// ListRooms returns info about all rooms
func (rm *RoomManager) ListRooms() []RoomInfo {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	list := make([]RoomInfo, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		room.mu.Lock()
		list = append(list, RoomInfo{
			ID:      room.ID,
			Name:    room.Name,
			Mode:    int(room.Mode),
			Players: len(room.nicks),
			Started: room.started,
		})
		room.mu.Unlock()
	}
	return list
}

// RemoveClient detaches a client from its room. The room closes when
// its host leaves or when it empties out. A seated leaver's input
// reverts to neutral so the cycle stops turning and firing; in an
// unstarted lobby the seat itself is freed and later seats shift down.
func (rm *RoomManager) RemoveClient(roomID string, c *Client) {
	rm.mu.RLock()
	room, ok := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !ok {
		return
	}

	room.mu.Lock()
	slot, seated := room.clients[c]
	delete(room.clients, c)
	if seated && slot >= 0 && slot < MaxPlayers {
		if room.started {
			room.inputs[slot] = Input{}
		} else {
			room.vacateSeat(slot)
		}
	}
	closeRoom := c == room.host || len(room.clients) == 0
	if closeRoom && room.started && room.stop != nil {
		close(room.stop)
		room.stop = nil
	}
	room.mu.Unlock()

	if closeRoom {
		rm.mu.Lock()
		delete(rm.rooms, roomID)
		rm.mu.Unlock()
	}
}

// vacateSeat drops a lobby seat and renumbers the seats above it.
// Shifted clients get a fresh welcome with their new slot and color.
// Caller holds r.mu.
func (r *Room) vacateSeat(slot int) {
	if slot >= len(r.nicks) {
		return
	}
	r.nicks = append(r.nicks[:slot], r.nicks[slot+1:]...)
	copy(r.inputs[slot:], r.inputs[slot+1:])
	r.inputs[MaxPlayers-1] = Input{}
	for oc, os := range r.clients {
		if os > slot {
			r.clients[oc] = os - 1
			oc.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
				Slot:  os - 1,
				Color: playerColors[os-1],
			}})
		}
	}
}

// Join seats a client in the next free slot, or attaches it as a
// spectator when the match is full or already running. Spectators of a
// running match immediately get a full-state snapshot built from the
// room's mirror, since regular snapshots only carry new trail pixels.
func (r *Room) Join(c *Client, nick string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := -1
	if !r.started && len(r.nicks) < MaxPlayers {
		slot = len(r.nicks)
		r.nicks = append(r.nicks, nick)
	}
	r.clients[c] = slot

	if r.started && r.mirror != nil {
		if data, err := msgpack.Marshal(r.mirror.FullSnapshot()); err == nil {
			c.SendBinary(data)
		}
	}
	return slot
}

// Start builds the authoritative game and launches its loop. Only the
// host may start, and only once.
func (r *Room) Start(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || c != r.host || len(r.nicks) == 0 {
		return false
	}

	r.game = NewGame(r.Mode, r.nicks)
	r.mirror = NewMirror()
	r.started = true
	r.ended = false
	r.stop = make(chan struct{})

	pixels := LevelObstacles(r.game.CurrentLevel())
	r.game.SetLevelObstacles(pixels)
	r.mirror.SetLevelObstacles(pixels)
	r.lastLevel = 0

	if r.analytics != nil {
		r.analytics.Track(EvtMatchStart, 0, r.ID, "")
		r.game.SetRoundEndHook(func(winner int) {
			r.analytics.Track(EvtRoundEnd, 0, r.ID, fmt.Sprintf(`{"winner":%d}`, winner))
		})
	}

	go r.game.RunLoop(r.stop, r.latestInputs, r.broadcast)
	return true
}

// SetInputFrom records input for the slot a client currently holds.
// Lobby leavers renumber seats, so the room's seat table is the
// authority rather than the slot the client was welcomed with.
func (r *Room) SetInputFrom(c *Client, input Input) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.clients[c]
	if !ok || slot < 0 || slot >= MaxPlayers {
		return
	}
	r.inputs[slot] = input
}

// latestInputs snapshots the per-slot input state for one tick
func (r *Room) latestInputs() [MaxPlayers]Input {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inputs
}

// broadcast fans one tick's snapshot out to every client as a binary
// msgpack frame, feeds the room mirror, and finalizes the match when a
// slot reaches the score limit.
func (r *Room) broadcast(snap Snapshot) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return
	}

	r.mu.Lock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		clients = append(clients, c)
	}
	// Applied under the room lock: spectator joins read the mirror's
	// full state concurrently.
	if r.mirror != nil {
		r.mirror.Apply(snap)
	}
	r.mu.Unlock()

	for _, c := range clients {
		c.SendBinary(data)
	}

	r.reloadLevel(snap)
	r.checkMatchEnd(snap)
}

// reloadLevel seeds the next level's obstacles into the game and the
// mirror when the rotation advances. The countdown phase gives the
// load a head start before play resumes.
func (r *Room) reloadLevel(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap.LevelIndex == r.lastLevel {
		return
	}
	r.lastLevel = snap.LevelIndex

	pixels := LevelObstacles(LevelRotation[snap.LevelIndex%len(LevelRotation)])
	r.game.SetLevelObstacles(pixels)
	if r.mirror != nil {
		r.mirror.SetLevelObstacles(pixels)
	}
}

// checkMatchEnd persists the match result and notifies clients once
// when a slot reaches the score limit
func (r *Room) checkMatchEnd(snap Snapshot) {
	if Phase(snap.Phase) != PhaseRoundEnd {
		return
	}

	winner := -1
	for slot, score := range snap.Scores {
		if score >= ScoreLimit {
			winner = slot
			break
		}
	}
	if winner < 0 {
		return
	}

	r.mu.Lock()
	if r.ended {
		r.mu.Unlock()
		return
	}
	r.ended = true
	// Back to the lobby: the loop stops, the room re-lists as joinable
	// and a rematch goes through Start again.
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	r.started = false
	nick := ""
	if winner < len(r.nicks) {
		nick = r.nicks[winner]
	}
	clients := make(map[*Client]int, len(r.clients))
	for c, slot := range r.clients {
		clients[c] = slot
	}
	r.mu.Unlock()

	end := Envelope{T: MsgMatchEnd, Data: MatchEndMsg{
		WinnerSlot: winner,
		WinnerNick: nick,
		Scores:     snap.Scores,
		Rounds:     snap.Round + 1,
	}}
	for c := range clients {
		c.SendJSON(end)
	}

	if r.analytics != nil {
		r.analytics.Track(EvtMatchEnd, 0, r.ID, "")
	}
	if r.db == nil {
		return
	}

	matchID, err := r.db.RecordMatch(int(r.Mode), snap.Round+1, winner)
	if err != nil {
		return
	}
	duration := float64(snap.Tick) / TickRate
	for c, slot := range clients {
		if slot < 0 || c.authPlayerID == 0 || slot >= len(snap.Scores) {
			continue
		}
		won := slot == winner
		r.db.RecordMatchPlayer(matchID, c.authPlayerID, slot, snap.Scores[slot], won)
		r.db.UpdateStatsAfterMatch(c.authPlayerID, snap.Scores[slot], snap.Round+1, won, duration)
		for _, def := range CheckAchievements(r.db, c.authPlayerID, won) {
			c.SendJSON(Envelope{T: MsgAchievement, Data: AchievementMsg{ID: def.ID, Name: def.Name}})
		}
	}
}

// PlayerCount returns the number of seated players
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nicks)
}
