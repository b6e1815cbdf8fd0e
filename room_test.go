package main

import (
	"strings"
	"testing"
)

// newTestRoom wires a room with seated clients and no sockets. The
// send channels buffer whatever the room pushes at them.
func newTestRoom(t *testing.T, nicks ...string) (*RoomManager, *Room, []*Client) {
	t.Helper()
	hub := NewHub(nil)
	rm := NewRoomManager(nil, nil)

	host := NewClient(hub, nil, "10.0.0.1")
	room := rm.CreateRoom("grid", ModeFFA, host, nicks[0])
	if room == nil {
		t.Fatal("CreateRoom returned nil")
	}
	clients := []*Client{host}
	for i, nick := range nicks[1:] {
		c := NewClient(hub, nil, "10.0.0.2")
		if slot := room.Join(c, nick); slot != i+1 {
			t.Fatalf("join slot = %d, want %d", slot, i+1)
		}
		clients = append(clients, c)
	}
	return rm, room, clients
}

func TestDisconnectNeutralizesInput(t *testing.T) {
	rm, room, cs := newTestRoom(t, "Anna", "Ben")
	if !room.Start(cs[0]) {
		t.Fatal("host start failed")
	}
	defer rm.RemoveClient(room.ID, cs[0])

	room.SetInputFrom(cs[1], Input{Left: true, Action: true})
	rm.RemoveClient(room.ID, cs[1])

	if got := room.latestInputs()[1]; got != (Input{}) {
		t.Errorf("input after disconnect = %+v, want neutral", got)
	}
}

func TestInputFromUnseatedClientDropped(t *testing.T) {
	rm, room, cs := newTestRoom(t, "Anna", "Ben")
	if !room.Start(cs[0]) {
		t.Fatal("host start failed")
	}
	defer rm.RemoveClient(room.ID, cs[0])

	stranger := NewClient(cs[0].hub, nil, "10.0.0.9")
	room.SetInputFrom(stranger, Input{Right: true})

	for slot, in := range room.latestInputs() {
		if in != (Input{}) {
			t.Errorf("slot %d input = %+v, want neutral", slot, in)
		}
	}
}

func TestLobbyLeaveFreesSeat(t *testing.T) {
	rm, room, cs := newTestRoom(t, "Anna", "Ben", "Cleo")
	room.SetInputFrom(cs[2], Input{Right: true})

	rm.RemoveClient(room.ID, cs[1])

	if n := room.PlayerCount(); n != 2 {
		t.Fatalf("player count = %d, want 2", n)
	}
	room.mu.Lock()
	slot := room.clients[cs[2]]
	nick := room.nicks[1]
	in := room.inputs[1]
	room.mu.Unlock()
	if slot != 1 {
		t.Errorf("shifted client slot = %d, want 1", slot)
	}
	if nick != "Cleo" {
		t.Errorf("seat 1 nick = %q, want Cleo", nick)
	}
	if !in.Right {
		t.Error("shifted seat should keep its own input")
	}

	// The shifted client is told its new seat.
	select {
	case raw := <-cs[2].send:
		if !strings.Contains(string(raw), `"slot":1`) {
			t.Errorf("reseat welcome = %s", raw)
		}
	default:
		t.Error("shifted client got no welcome")
	}

	// The freed seat is joinable again and the match seats three.
	dana := NewClient(cs[0].hub, nil, "10.0.0.3")
	if got := room.Join(dana, "Dana"); got != 2 {
		t.Fatalf("rejoin slot = %d, want 2", got)
	}
	if !room.Start(cs[0]) {
		t.Fatal("host start failed")
	}
	defer rm.RemoveClient(room.ID, cs[0])
	room.mu.Lock()
	seated := len(room.game.players)
	room.mu.Unlock()
	if seated != 3 {
		t.Errorf("seated cycles = %d, want 3", seated)
	}
}

func TestMatchEndReturnsToLobby(t *testing.T) {
	rm, room, cs := newTestRoom(t, "Anna", "Ben")
	if !room.Start(cs[0]) {
		t.Fatal("host start failed")
	}

	snap := Snapshot{
		Phase:  int(PhaseRoundEnd),
		Winner: 0,
		Scores: []int{ScoreLimit, 3},
		Round:  12,
	}
	room.checkMatchEnd(snap)

	room.mu.Lock()
	started, stop, ended := room.started, room.stop, room.ended
	room.mu.Unlock()
	if started {
		t.Error("room should be back in the lobby")
	}
	if stop != nil {
		t.Error("game loop should be stopped")
	}
	if !ended {
		t.Error("match end should be recorded")
	}

	list := rm.ListRooms()
	if len(list) != 1 || list[0].Started {
		t.Errorf("room should re-list as joinable, got %+v", list)
	}

	// Same seats, fresh match.
	if !room.Start(cs[0]) {
		t.Fatal("rematch start failed")
	}
	defer rm.RemoveClient(room.ID, cs[0])
	room.mu.Lock()
	ended = room.ended
	room.mu.Unlock()
	if ended {
		t.Error("rematch should clear the ended flag")
	}
}

func TestMatchEndNotifiedOnce(t *testing.T) {
	rm, room, cs := newTestRoom(t, "Anna")
	if !room.Start(cs[0]) {
		t.Fatal("host start failed")
	}
	defer rm.RemoveClient(room.ID, cs[0])

	snap := Snapshot{
		Phase:  int(PhaseRoundEnd),
		Winner: 0,
		Scores: []int{ScoreLimit},
	}
	room.checkMatchEnd(snap)
	room.checkMatchEnd(snap)

	got := 0
	for {
		select {
		case raw := <-cs[0].send:
			if strings.Contains(string(raw), MsgMatchEnd) {
				got++
			}
			continue
		default:
		}
		break
	}
	if got != 1 {
		t.Errorf("match end notices = %d, want 1", got)
	}
}
