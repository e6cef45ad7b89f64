package worker

import (
	"github.com/spec-kit/ops-console/internal/service"
)

// StartActivityWorker subscribes the activity feed to domain events.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
