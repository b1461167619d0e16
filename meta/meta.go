// meta/meta.go
package meta

// DEFAULT_PLAYERS is the number of participants when none is given.
const DEFAULT_PLAYERS = 3

// DEFAULT_QUANTITY is the number of games simulated when none is given.
const DEFAULT_QUANTITY = 1

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// STALEMATE_ROUNDS is the number of consecutive full rounds without a single
// move after which a game is declared a draw.
const STALEMATE_ROUNDS = 100

// MAX_TURNS caps the length of a single game.
const MAX_TURNS = 5000
