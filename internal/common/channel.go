package common

import "fmt"

// NotificationTopic is the pubsub topic every lifecycle event is published
// on. The ws proxy subscribes to it and fans packs out by channel key.
const NotificationTopic = "notification"

func RaidChannel(raidID string) string {
	return fmt.Sprintf("raid#%s", raidID)
}

func UserChannel(userID string) string {
	return fmt.Sprintf("user#%s", userID)
}
