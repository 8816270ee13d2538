package mqtt

import (
	"fmt"
	"strings"
)

const DefaultCommandTopic = "PiInput"

// CommandTopic joins an optional prefix with the device command topic:
// {prefix}/{topic}, or just {topic} without a prefix.
func CommandTopic(prefix, topic string) string {
	topic = strings.Trim(topic, "/")
	if topic == "" {
		topic = DefaultCommandTopic
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return topic
	}
	return fmt.Sprintf("%s/%s", prefix, topic)
}
