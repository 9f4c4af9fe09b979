package domain

import "strings"

const (
	SystemEntity  = "system"
	SessionEntity = "session"
	ToastEntity   = "toast"
	DialogEntity  = "dialog"
	CommandEntity = "command"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSessionExpired  = SessionEntity + ".expired"
	TopicSessionClosed   = SessionEntity + ".closed"
	TopicToastList       = ToastEntity + ".list"
	TopicDialogState     = DialogEntity + ".state"
	TopicCommandError    = CommandEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionExpired   = "expired"
	ActionClosed    = "closed"
	ActionList      = "list"
	ActionDetail    = "detail"
	ActionState     = "state"
	ActionChanged   = "changed"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
)

// ListTopic returns the canonical list topic for the given page.
func ListTopic(entity string) string {
	return buildEntityTopic(entity, ActionList)
}

// DetailTopic returns the canonical detail topic for the given page.
func DetailTopic(entity string) string {
	return buildEntityTopic(entity, ActionDetail)
}

// ChangedTopic is where backend change events for a resource are relayed.
func ChangedTopic(entity string) string {
	return buildEntityTopic(entity, ActionChanged)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
