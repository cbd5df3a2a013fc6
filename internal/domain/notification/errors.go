package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationNotOwned = errors.New("notification belongs to another recipient")
	ErrNotificationNotLeave = errors.New("notification is not a leave request")
	ErrNotificationActioned = errors.New("notification already actioned")
)
