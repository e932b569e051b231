package interfaces

import "prefacturation_service/internal/domain/entities"

// IEventPublisher pushes saved changes to connected portals. Publishing is
// fire-and-forget.
type IEventPublisher interface {
	Publish(event entities.PrefacturationEvent)
}
