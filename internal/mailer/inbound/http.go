package inbound

import (
	"github.com/shandysiswandi/mailbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/mailbridge/internal/pkg/router"
	"github.com/shandysiswandi/mailbridge/internal/pkg/uid"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc, publisher messaging.Publisher, uuid uid.StringID) {
	end := &HTTPEndpoint{uc: uc, publisher: publisher, uuid: uuid}

	r.POST("/api/v1/mailer/trigger", end.Trigger)
	r.POST("/api/v1/mailer/notify", end.Notify)
}
