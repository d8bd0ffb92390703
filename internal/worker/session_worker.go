package worker

import (
	"github.com/peopleops/hr-console/internal/service"
)

// StartSessionAuditor registers the session audit handlers.
func StartSessionAuditor(audit *service.SessionAudit) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}
