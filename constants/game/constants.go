package game_constants

// Room defaults, overridable from the environment
const DEFAULT_MAX_PLAYERS = 10
const DEFAULT_MAFIA_COEFF = 3 // one mafioso per this many players
const DEFAULT_PLAYER_NAME = "Player"

// Phase lengths, in seconds
const (
	DAY_TIMEOUT   = 60
	NIGHT_TIMEOUT = 30
	VOTE_TIMEOUT  = 20
)

// Inactivity timeouts, in seconds
const NEW_ROOM_TIMEOUT = 300
const INACTIVE_ROOM_TIMEOUT = 600

// Chat
const MAX_MESSAGE_LENGTH = 500
const CHAT_MESSAGES_PER_SECOND = 2.0
const CHAT_BURST = 5

// Optional roles dealt when the room does not say otherwise
const DEFAULT_OPTIONAL_ROLES = "detective,doctor"

const SYNC_QUEUE_SIZE = 256
