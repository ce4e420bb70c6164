package domain

// AuthorizedUsersKey is the storage slot holding authorized Telegram user ids
const AuthorizedUsersKey = "authorized-users"

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle                UserState = "idle"
	StateWaitingPassword     UserState = "waiting_password"
	StateWaitingWord         UserState = "waiting_word"
	StateWaitingMeaning      UserState = "waiting_meaning"
	StateWaitingUsage        UserState = "waiting_usage"
	StateWaitingUsageMeaning UserState = "waiting_usage_meaning"
)

// StateData holds the word being entered by a user
type StateData struct {
	State           UserState
	Word            string
	Meaning         string
	UsageExpression string
}
