package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/schedule"
)

// DecodeRequest carries a cron expression to decode
type DecodeRequest struct {
	Cron string `json:"cron"`
}

// EncodeResponse is the cron form of a picker state. Valid is false when the
// expression would be rejected by the scheduler.
type EncodeResponse struct {
	Cron    string     `json:"cron"`
	Valid   bool       `json:"valid"`
	NextRun *time.Time `json:"next_run,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// ScheduleHandler converts between cron strings and schedule picker state
type ScheduleHandler struct {
	timezone string
	now      func() time.Time
}

func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{timezone: constants.DefaultTimezone, now: time.Now}
}

// Encode handles POST /api/schedule/encode
func (h *ScheduleHandler) Encode(c *gin.Context) {
	var state schedule.State
	if !BindJSON(c, &state) {
		return
	}
	resp := EncodeResponse{Cron: schedule.ToCron(state)}
	if err := schedule.Validate(resp.Cron); err != nil {
		resp.Error = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Valid = true
	if next, err := schedule.NextRun(resp.Cron, h.now(), h.timezone); err == nil {
		resp.NextRun = &next
	}
	c.JSON(http.StatusOK, resp)
}

// Decode handles POST /api/schedule/decode. Expressions with fewer than five
// fields decode to the default schedule.
func (h *ScheduleHandler) Decode(c *gin.Context) {
	var req DecodeRequest
	if !BindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule.FromCron(req.Cron)})
}

// Options handles GET /api/schedule/options
func (h *ScheduleHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": schedule.PickerOptions()})
}
