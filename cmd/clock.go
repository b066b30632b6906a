package cmd

import "github.com/jonboulle/clockwork"

// clock supplies "now" for relative dates and trailing windows.
var clock = clockwork.NewRealClock()

// setClock swaps the time source. Pass nil to reset to real time.
func setClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
