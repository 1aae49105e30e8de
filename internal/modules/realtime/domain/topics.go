package domain

import "strings"

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
)

// ConsoleEntities are the views a console can be told to reload.
var ConsoleEntities = []string{"tables", "customers", "reservations"}

// Topic joins entity and action ("tables.updated"). Either part empty yields "".
func Topic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

// EntityOf returns the entity part of a topic.
func EntityOf(topic string) string {
	topic = strings.TrimSpace(topic)
	if idx := strings.Index(topic, "."); idx >= 0 {
		return topic[:idx]
	}
	return topic
}

// ReloadViews lists the console screens showing data of entity. A booking
// touches tables and reservations at once, so the dashboard listens to both.
func ReloadViews(entity string) []string {
	switch entity {
	case "tables":
		return []string{"mesas", "reservar", "dashboard"}
	case "customers":
		return []string{"clientes"}
	case "reservations":
		return []string{"dashboard", "clientes", "reservar"}
	default:
		return nil
	}
}
