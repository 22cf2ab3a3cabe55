package redis

import (
	"fmt"

	"github.com/transferhub/transferhub-go/internal/model"
)

// Key prefix for all transfer-hub data
const keyPrefix = "transferhub"

// transferKey returns the Redis key for a Transfer document
func transferKey(id model.TransferID) string {
	return fmt.Sprintf("%s:transfer:%s", keyPrefix, id)
}

// transferIndexKey returns the Redis key for the insertion-order LIST of
// transfer ids
func transferIndexKey() string {
	return fmt.Sprintf("%s:idx:transfers", keyPrefix)
}

// userKey returns the Redis key for a User document
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}
