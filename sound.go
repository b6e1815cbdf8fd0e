package main

// Sound event kinds queued by the simulation and replicated in
// snapshots. Loop events are keyed by player slot so the consumer can
// stop the right channel.
const (
	SoundRoundStart = "round_start"
	SoundCrash      = "crash"
	SoundPickup     = "pickup"
	SoundFire       = "fire"
	SoundLoopStart  = "loop_start"
	SoundLoopStop   = "loop_stop"
	SoundTeleport   = "teleport"
)

// SoundEvent is one queued audio trigger
type SoundEvent struct {
	Kind string `json:"k"`
	Slot int    `json:"s"`
}

// SoundSink consumes sound events as they are emitted. The host wires
// in whatever plays or forwards audio; tests inject a recorder.
type SoundSink interface {
	OnSound(SoundEvent)
}

// emitSound queues an event for the next snapshot and forwards it to
// the configured sink, if any. Events without a player use slot -1.
func (g *Game) emitSound(kind string, slot int) {
	ev := SoundEvent{Kind: kind, Slot: slot}
	g.sounds = append(g.sounds, ev)
	if g.sink != nil {
		g.sink.OnSound(ev)
	}
}
