package worker

import (
	"github.com/simplon-hub/code-hub/internal/service"
)

// StartActivityRecorder registers the notification-feed handlers.
func StartActivityRecorder(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
